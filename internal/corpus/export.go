package corpus

import (
	"context"
	"sort"
	"strconv"
	"time"

	"corpusdash/internal/models"
)

// RecordTable flattens a RecordSet into uniform rows for export consumers.
// Category identifiers are resolved to display names inline.
func RecordTable(ctx context.Context, token string, set *models.RecordSet, resolver *CategoryResolver) *models.Table {
	table := models.NewTable(
		"id", "user_id", "category", "media_type", "status",
		"size", "latitude", "longitude", "created_at", "updated_at",
	)
	if set == nil {
		return table
	}
	table.Stale = set.Stale
	table.AsOf = set.FetchedAt

	for i := range set.Records {
		rec := &set.Records[i]

		size := ""
		if rec.Size != nil {
			size = strconv.FormatInt(*rec.Size, 10)
		}
		lat, lon := "", ""
		if rec.Location != nil {
			lat = strconv.FormatFloat(rec.Location.Latitude, 'f', -1, 64)
			lon = strconv.FormatFloat(rec.Location.Longitude, 'f', -1, 64)
		}
		updated := ""
		if rec.UpdatedAt != nil {
			updated = rec.UpdatedAt.UTC().Format(time.RFC3339)
		}

		table.AddRow(
			rec.ID,
			rec.UserID,
			resolver.Resolve(ctx, token, rec.CategoryID),
			string(rec.MediaType),
			string(rec.Status),
			size,
			lat,
			lon,
			rec.CreatedAt.UTC().Format(time.RFC3339),
			updated,
		)
	}
	return table
}

// DistributionTable flattens one distribution into name/count rows, sorted by
// count descending with name ascending tie-break.
func DistributionTable(dimension string, dist map[string]int) *models.Table {
	table := models.NewTable(dimension, "count")

	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if dist[keys[a]] != dist[keys[b]] {
			return dist[keys[a]] > dist[keys[b]]
		}
		return keys[a] < keys[b]
	})

	for _, k := range keys {
		table.AddRow(k, strconv.Itoa(dist[k]))
	}
	return table
}

// TimelineTable flattens the calendar buckets in chronological order, which
// for the bucket key formats used here is plain string order.
func TimelineTable(res *models.AggregationResult) *models.Table {
	table := models.NewTable("bucket", "count")
	if res == nil {
		return table
	}

	keys := make([]string, 0, len(res.Timeline))
	for k := range res.Timeline {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.AddRow(k, strconv.Itoa(res.Timeline[k]))
	}
	return table
}
