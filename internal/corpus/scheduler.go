package corpus

import (
	"sync"

	"github.com/roylee0704/gron"

	"corpusdash/internal/corpus/interfaces"
	"corpusdash/internal/models"
	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
)

// SnapshotSource is the slice of the analytics service the scheduler needs:
// take and restore session-store snapshots.
type SnapshotSource interface {
	Snapshot() *models.Snapshot
	RestoreSnapshot(snap *models.Snapshot)
}

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	source  SnapshotSource
	manager *SnapshotManager
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Snapshot.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		err := s.manager.Save(s.config.Snapshot.FilePath, s.source.Snapshot())
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted snapshot to file %s", s.config.Snapshot.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	snap, err := s.manager.Load(s.config.Snapshot.FilePath)
	if err != nil {
		return err
	}
	if snap != nil {
		s.source.RestoreSnapshot(snap)
		s.logger.Infof(providers.TypeApp, "Restored snapshot of %d record sets from %s", len(snap.Sets), s.config.Snapshot.FilePath)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting snapshot to file...")
	err := s.manager.Save(s.config.Snapshot.FilePath, s.source.Snapshot())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, source SnapshotSource, manager *SnapshotManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		source:  source,
		manager: manager,
	}
}
