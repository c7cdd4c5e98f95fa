package corpus

import (
	"os"
	"time"

	json "github.com/goccy/go-json"

	"corpusdash/internal/corpus/interfaces"
	"corpusdash/internal/models"
	"corpusdash/internal/providers"
)

// SnapshotManager persists the session store to disk so analytics stay
// available while the backend is unreachable. Files are zstd-compressed JSON
// written atomically (tmp + rename).
type SnapshotManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *SnapshotManager {
	return &SnapshotManager{
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (m *SnapshotManager) Save(fileName string, snap *models.Snapshot) error {
	start := time.Now()

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}

	m.metrics.ObserveSnapshotDuration(time.Since(start))
	return nil
}

// Load reads a snapshot from disk. A missing file is not an error: the
// service simply starts with an empty session store.
func (m *SnapshotManager) Load(fileName string) (*models.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return nil, err
	}
	if snap.Version != models.SnapshotVersion {
		m.logger.Warnf(providers.TypeApp, "Snapshot version %d unsupported, starting empty", snap.Version)
		return nil, nil
	}
	if snap.Sets == nil {
		snap.Sets = make(map[string]*models.RecordSet)
	}

	return &snap, nil
}

func (m *SnapshotManager) Close() {
	m.compressor.Close()
}
