package models

// RankEntry is one row of a comparison ranking.
type RankEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Total       int    `json:"total"`
}

// ComparisonDelta holds signed differences (requesting user minus compared
// user) per distribution dimension. Keys are the union of both sides; a key
// absent on one side counts as zero, so deltas are always defined.
type ComparisonDelta struct {
	Total     int            `json:"total"`
	MediaType map[string]int `json:"media_type"`
	Status    map[string]int `json:"status"`
}

// ComparisonResult maps each compared user to an independent aggregation,
// plus a deterministic ranking and the requesting user's pairwise deltas.
type ComparisonResult struct {
	RequestingUserID string                        `json:"requesting_user_id"`
	Results          map[string]*AggregationResult `json:"results"`
	Ranking          []RankEntry                   `json:"ranking"`
	Deltas           map[string]*ComparisonDelta   `json:"deltas"`
}
