package corpus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"corpusdash/internal/models"
	"corpusdash/internal/providers"
)

// timestampLayouts are tried in order when parsing backend timestamps. The
// backend emits RFC 3339, but older records come back without a zone or with
// a space separator.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalized is the tagged outcome for one raw payload: exactly one of
// Record and Rejection is set.
type normalized struct {
	Record    *models.Record
	Rejection *models.Rejection
}

type Normalizer struct {
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewNormalizer(logger providers.Logger, metrics providers.MetricsProviderInterface) *Normalizer {
	return &Normalizer{logger: logger, metrics: metrics}
}

// Normalize validates and coerces raw payloads into a RecordSet. Malformed
// entries are tallied and skipped; they never abort the batch. Duplicate
// identifiers within one fetch session are dropped so no record is counted
// twice downstream.
func (n *Normalizer) Normalize(payloads []models.RawRecord, partial bool) *models.RecordSet {
	set := &models.RecordSet{
		Records:   make([]models.Record, 0, len(payloads)),
		Partial:   partial,
		FetchedAt: time.Now().UTC(),
	}

	seen := make(map[string]struct{}, len(payloads))
	for i, raw := range payloads {
		out := normalizeOne(i, raw)
		if out.Rejection != nil {
			set.Rejections = append(set.Rejections, *out.Rejection)
			continue
		}
		if _, dup := seen[out.Record.ID]; dup {
			set.Rejections = append(set.Rejections, models.Rejection{
				Index:  i,
				ID:     out.Record.ID,
				Reason: "duplicate identifier",
			})
			continue
		}
		seen[out.Record.ID] = struct{}{}
		set.Records = append(set.Records, *out.Record)
	}

	if rejected := set.Rejected(); rejected > 0 {
		n.metrics.AddRecordsRejected(rejected)
		n.logger.Warnf(providers.TypeFetch, "Rejected %d of %d payloads during normalization", rejected, len(payloads))
	}

	return set
}

func normalizeOne(index int, raw models.RawRecord) normalized {
	reject := func(id, reason string) normalized {
		return normalized{Rejection: &models.Rejection{Index: index, ID: id, Reason: reason}}
	}

	if raw == nil {
		return reject("", "empty payload")
	}

	id := cast.ToString(raw["id"])
	if id == "" {
		return reject("", "missing required field: id")
	}

	userID := cast.ToString(raw["user_id"])
	if userID == "" {
		return reject(id, "missing required field: user_id")
	}

	rawMedia, ok := raw["media_type"]
	if !ok || cast.ToString(rawMedia) == "" {
		return reject(id, "missing required field: media_type")
	}
	rawStatus, ok := raw["status"]
	if !ok || cast.ToString(rawStatus) == "" {
		return reject(id, "missing required field: status")
	}

	createdAt, err := parseTimestamp(raw["created_at"])
	if err != nil {
		return reject(id, fmt.Sprintf("invalid created_at: %v", err))
	}

	rec := &models.Record{
		ID:        id,
		UserID:    userID,
		MediaType: models.ParseMediaType(cast.ToString(rawMedia)),
		Status:    models.ParseRecordStatus(cast.ToString(rawStatus)),
		CreatedAt: createdAt,
	}

	// Optional fields default to absent on missing or malformed values.
	if cat := cast.ToString(raw["category_id"]); cat != "" {
		if _, err := uuid.Parse(cat); err == nil {
			rec.CategoryID = cat
		}
	}
	if rawSize, ok := raw["size"]; ok {
		if size, err := cast.ToInt64E(rawSize); err == nil && size >= 0 {
			rec.Size = &size
		}
	}
	if updated, err := parseTimestamp(raw["updated_at"]); err == nil && !updated.Before(createdAt) {
		rec.UpdatedAt = &updated
	}
	if geo := parseLocation(raw["location"]); geo != nil {
		rec.Location = geo
	}

	return normalized{Record: rec}
}

func parseTimestamp(v interface{}) (time.Time, error) {
	s := cast.ToString(v)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseLocation(v interface{}) *models.GeoPoint {
	loc, err := cast.ToStringMapE(v)
	if err != nil {
		return nil
	}
	lat, latErr := cast.ToFloat64E(loc["latitude"])
	lon, lonErr := cast.ToFloat64E(loc["longitude"])
	if latErr != nil || lonErr != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return &models.GeoPoint{Latitude: lat, Longitude: lon}
}
