package corpus

import (
	"context"
	"fmt"
	"time"

	"corpusdash/internal/models"
)

// Aggregator computes summary statistics over a RecordSet in a single pass.
// Given the same RecordSet and category-cache state the output is identical
// on every invocation; nothing here depends on fetch order.
type Aggregator struct {
	resolver *CategoryResolver
}

func NewAggregator(resolver *CategoryResolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// BucketKey formats t's calendar bucket for the given granularity, in UTC.
func BucketKey(t time.Time, g models.Granularity) string {
	t = t.UTC()
	switch g {
	case models.GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case models.GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Aggregate walks the set once, incrementing the media-type, status,
// resolved-category and calendar-bucket counters for every record. An empty
// set yields all-zero counts and absent timestamp bounds.
func (a *Aggregator) Aggregate(ctx context.Context, token string, set *models.RecordSet, g models.Granularity) *models.AggregationResult {
	res := models.NewAggregationResult(g)
	if set == nil {
		return res
	}

	res.Rejected = set.Rejected()
	res.Partial = set.Partial
	res.Stale = set.Stale
	res.AsOf = set.FetchedAt

	contributors := make(map[string]struct{})
	for i := range set.Records {
		rec := &set.Records[i]

		res.Total++
		res.MediaType[string(rec.MediaType)]++
		res.Status[string(rec.Status)]++
		res.Category[a.resolver.Resolve(ctx, token, rec.CategoryID)]++
		res.Timeline[BucketKey(rec.CreatedAt, g)]++

		contributors[rec.UserID] = struct{}{}

		if res.Earliest == nil || rec.CreatedAt.Before(*res.Earliest) {
			created := rec.CreatedAt
			res.Earliest = &created
		}
		if res.Latest == nil || rec.CreatedAt.After(*res.Latest) {
			created := rec.CreatedAt
			res.Latest = &created
		}

		if rec.Size != nil {
			res.TotalBytes += *rec.Size
			res.BytesByMediaType[string(rec.MediaType)] += *rec.Size
			res.SizedRecords++
		}
	}

	res.Contributors = len(contributors)
	res.CategoryDiversity = len(res.Category)

	return res
}
