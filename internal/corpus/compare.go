package corpus

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"corpusdash/internal/models"
)

// Comparer runs the aggregator independently over multiple user RecordSets
// and derives rankings and pairwise deltas. Per-user aggregation is a pure
// function of its input set, so the users are aggregated concurrently.
type Comparer struct {
	aggregator *Aggregator
	directory  *UserDirectory
}

func NewComparer(aggregator *Aggregator, directory *UserDirectory) *Comparer {
	return &Comparer{aggregator: aggregator, directory: directory}
}

// Compare aggregates every user's set and ranks users by total count
// descending, ties broken by ascending user-identifier comparison. The
// requesting user is always part of the result; users missing from sets
// contribute an empty RecordSet so deltas stay defined.
func (c *Comparer) Compare(ctx context.Context, token, requestingUserID string, sets map[string]*models.RecordSet, g models.Granularity) (*models.ComparisonResult, error) {
	userIDs := make([]string, 0, len(sets)+1)
	for id := range sets {
		userIDs = append(userIDs, id)
	}
	if _, ok := sets[requestingUserID]; !ok && requestingUserID != "" {
		userIDs = append(userIDs, requestingUserID)
	}
	sort.Strings(userIDs)

	results := make([]*models.AggregationResult, len(userIDs))
	grp, grpCtx := errgroup.WithContext(ctx)
	for i, id := range userIDs {
		i := i
		set := sets[id]
		if set == nil {
			set = &models.RecordSet{}
		}
		grp.Go(func() error {
			results[i] = c.aggregator.Aggregate(grpCtx, token, set, g)
			return grpCtx.Err()
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	comparison := &models.ComparisonResult{
		RequestingUserID: requestingUserID,
		Results:          make(map[string]*models.AggregationResult, len(userIDs)),
		Deltas:           make(map[string]*models.ComparisonDelta),
	}
	for i, id := range userIDs {
		comparison.Results[id] = results[i]
	}

	ranked := append([]string(nil), userIDs...)
	sort.Slice(ranked, func(a, b int) bool {
		ta, tb := comparison.Results[ranked[a]].Total, comparison.Results[ranked[b]].Total
		if ta != tb {
			return ta > tb
		}
		return ranked[a] < ranked[b]
	})
	for i, id := range ranked {
		comparison.Ranking = append(comparison.Ranking, models.RankEntry{
			Rank:        i + 1,
			UserID:      id,
			DisplayName: c.displayName(ctx, token, id),
			Total:       comparison.Results[id].Total,
		})
	}

	mine := comparison.Results[requestingUserID]
	for _, id := range userIDs {
		if id == requestingUserID || mine == nil {
			continue
		}
		comparison.Deltas[id] = delta(mine, comparison.Results[id])
	}

	return comparison, nil
}

func (c *Comparer) displayName(ctx context.Context, token, userID string) string {
	if c.directory == nil {
		return UnknownUser
	}
	return c.directory.DisplayName(ctx, token, userID)
}

func delta(mine, other *models.AggregationResult) *models.ComparisonDelta {
	return &models.ComparisonDelta{
		Total:     mine.Total - other.Total,
		MediaType: diffCounts(mine.MediaType, other.MediaType),
		Status:    diffCounts(mine.Status, other.Status),
	}
}

// diffCounts subtracts per key over the union of both maps, so a dimension
// present on only one side still yields a signed difference.
func diffCounts(mine, other map[string]int) map[string]int {
	out := make(map[string]int, len(mine)+len(other))
	for k, v := range mine {
		out[k] = v - other[k]
	}
	for k, v := range other {
		if _, ok := mine[k]; !ok {
			out[k] = -v
		}
	}
	return out
}
