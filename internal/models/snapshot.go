package models

import "time"

// Snapshot is the offline persistence envelope: the session store of fetched
// RecordSets keyed by fetch context, with an explicit version field so future
// formats can migrate on load.
type Snapshot struct {
	Version int                   `json:"version"`
	SavedAt time.Time             `json:"saved_at"`
	Sets    map[string]*RecordSet `json:"sets"`
}

const SnapshotVersion = 1

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Sets:    make(map[string]*RecordSet),
	}
}
