package models

import "time"

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case GranularityWeek:
		return GranularityWeek
	case GranularityMonth:
		return GranularityMonth
	}
	return GranularityDay
}

// AggregationResult is the statistics bundle derived from one RecordSet.
// Each record contributes exactly one unit to every distribution, so every
// distribution sums to Total. Timeline counts sum to Total as well, since
// normalization requires a valid creation timestamp.
type AggregationResult struct {
	Total       int            `json:"total"`
	MediaType   map[string]int `json:"media_type"`
	Status      map[string]int `json:"status"`
	Category    map[string]int `json:"category"`
	Timeline    map[string]int `json:"timeline"`
	Granularity Granularity    `json:"granularity"`

	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`

	Contributors      int              `json:"contributors"`
	CategoryDiversity int              `json:"category_diversity"`
	TotalBytes        int64            `json:"total_bytes"`
	BytesByMediaType  map[string]int64 `json:"bytes_by_media_type"`
	SizedRecords      int              `json:"sized_records"`

	Rejected int  `json:"rejected"`
	Partial  bool `json:"partial"`

	// Stale marks a result computed from stored rather than freshly fetched
	// records; AsOf is the fetch time of the underlying set either way.
	Stale bool      `json:"stale,omitempty"`
	AsOf  time.Time `json:"as_of,omitempty"`
}

func NewAggregationResult(g Granularity) *AggregationResult {
	return &AggregationResult{
		MediaType:        make(map[string]int),
		Status:           make(map[string]int),
		Category:         make(map[string]int),
		Timeline:         make(map[string]int),
		Granularity:      g,
		BytesByMediaType: make(map[string]int64),
	}
}
