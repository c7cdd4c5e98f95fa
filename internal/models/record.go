package models

import "time"

// RawRecord is one record payload exactly as the backend returned it.
// The backend is loosely typed, so nothing about shape or field types is
// assumed until normalization.
type RawRecord map[string]interface{}

type MediaType string

const (
	MediaText    MediaType = "text"
	MediaAudio   MediaType = "audio"
	MediaVideo   MediaType = "video"
	MediaImage   MediaType = "image"
	MediaUnknown MediaType = "unknown"
)

// ParseMediaType maps a raw value onto the media enumeration. Unrecognized
// values land in the unknown bucket so the record still counts downstream.
func ParseMediaType(s string) MediaType {
	switch MediaType(s) {
	case MediaText, MediaAudio, MediaVideo, MediaImage:
		return MediaType(s)
	}
	return MediaUnknown
}

type RecordStatus string

const (
	StatusPending  RecordStatus = "pending"
	StatusUploaded RecordStatus = "uploaded"
	StatusFailed   RecordStatus = "failed"
	StatusUnknown  RecordStatus = "unknown"
)

func ParseRecordStatus(s string) RecordStatus {
	switch RecordStatus(s) {
	case StatusPending, StatusUploaded, StatusFailed:
		return RecordStatus(s)
	}
	return StatusUnknown
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Record is one normalized corpus contribution. This system only ever reads
// records; it never mutates remote state.
type Record struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	CategoryID string       `json:"category_id,omitempty"`
	MediaType  MediaType    `json:"media_type"`
	Status     RecordStatus `json:"status"`
	Size       *int64       `json:"size,omitempty"`
	Location   *GeoPoint    `json:"location,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  *time.Time   `json:"updated_at,omitempty"`
}

// Rejection describes one payload the normalizer refused, with enough context
// to surface it in logs and tallies without aborting the batch.
type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// RecordSet is an ordered collection of normalized records sharing one fetch
// context. It is owned by the call that produced it and read-only afterward.
// Stale marks a set served from the session store or a restored snapshot in
// place of a live fetch; FetchedAt then says how old the data is.
type RecordSet struct {
	Records    []Record    `json:"records"`
	Rejections []Rejection `json:"rejections,omitempty"`
	Partial    bool        `json:"partial"`
	Stale      bool        `json:"stale,omitempty"`
	FetchedAt  time.Time   `json:"fetched_at"`
}

func (rs *RecordSet) Rejected() int {
	return len(rs.Rejections)
}

// RecordFilter constrains a fetch by any subset of its fields. Zero values
// mean "no constraint".
type RecordFilter struct {
	UserID     string
	CategoryID string
	MediaType  string
}

// Category is one taxonomy node as listed by the backend.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BackendUser is the slice of the backend user object this system cares about.
type BackendUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
