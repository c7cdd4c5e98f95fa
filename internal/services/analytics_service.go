package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"corpusdash/internal/corpus"
	"corpusdash/internal/models"
	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
)

// wholeCorpusKey is the session-store key for an unfiltered fetch.
const wholeCorpusKey = "all"

type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, token, userID string, g models.Granularity) (*models.AggregationResult, error)
	CompareUsers(ctx context.Context, token, requesterID string, userIDs []string, g models.Granularity) (*models.ComparisonResult, error)
	Insights(ctx context.Context, token, userID string, g models.Granularity) ([]string, error)
	ExportRecords(ctx context.Context, token, userID string) (*models.Table, error)
	Snapshot() *models.Snapshot
	RestoreSnapshot(snap *models.Snapshot)
	StoredSets() int
}

// AnalyticsService wires the pipeline: fetch -> normalize -> aggregate ->
// {summary, comparison, insights, export}. Each user-facing call works on its
// own RecordSet; the only shared state is the session store of last fetched
// sets, kept for snapshots and offline fallback.
type AnalyticsService struct {
	conf       *structures.Config
	fetcher    corpus.FetcherInterface
	normalizer *corpus.Normalizer
	aggregator *corpus.Aggregator
	comparer   *corpus.Comparer
	resolver   *corpus.CategoryResolver
	logger     providers.Logger

	mu   sync.RWMutex
	sets map[string]*models.RecordSet
}

func NewAnalyticsService(
	conf *structures.Config,
	fetcher corpus.FetcherInterface,
	normalizer *corpus.Normalizer,
	aggregator *corpus.Aggregator,
	comparer *corpus.Comparer,
	resolver *corpus.CategoryResolver,
	logger providers.Logger,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		conf:       conf,
		fetcher:    fetcher,
		normalizer: normalizer,
		aggregator: aggregator,
		comparer:   comparer,
		resolver:   resolver,
		logger:     logger,
		sets:       make(map[string]*models.RecordSet),
	}
}

func (s *AnalyticsService) Summary(ctx context.Context, token, userID string, g models.Granularity) (*models.AggregationResult, error) {
	set, err := s.fetchSet(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Aggregate(ctx, token, set, g), nil
}

func (s *AnalyticsService) CompareUsers(ctx context.Context, token, requesterID string, userIDs []string, g models.Granularity) (*models.ComparisonResult, error) {
	ids := make([]string, 0, len(userIDs)+1)
	seen := make(map[string]struct{})
	for _, id := range append(userIDs, requesterID) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	// Independent per-user fetches may run concurrently; each page walk is
	// still sequential inside its own fetch call.
	sets := make([]*models.RecordSet, len(ids))
	grp, grpCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		grp.Go(func() error {
			set, err := s.fetchSet(grpCtx, token, id)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	byUser := make(map[string]*models.RecordSet, len(ids))
	for i, id := range ids {
		byUser[id] = sets[i]
	}

	return s.comparer.Compare(ctx, token, requesterID, byUser, g)
}

func (s *AnalyticsService) Insights(ctx context.Context, token, userID string, g models.Granularity) ([]string, error) {
	result, err := s.Summary(ctx, token, userID, g)
	if err != nil {
		return nil, err
	}
	return corpus.GenerateInsights(result, nil, s.conf.Insights.GrowthThreshold), nil
}

func (s *AnalyticsService) ExportRecords(ctx context.Context, token, userID string) (*models.Table, error) {
	set, err := s.fetchSet(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	return corpus.RecordTable(ctx, token, set, s.resolver), nil
}

// fetchSet retrieves and normalizes one fetch context, refreshing the session
// store. When the backend yields nothing and a stored set exists, the stored
// set is served instead so a backend outage degrades to stale data rather
// than an empty dashboard. Credential expiry always propagates.
func (s *AnalyticsService) fetchSet(ctx context.Context, token, userID string) (*models.RecordSet, error) {
	key := storeKey(userID)

	res, err := s.fetcher.Fetch(ctx, token, models.RecordFilter{UserID: userID}, s.conf.Backend.PageSize, s.conf.Backend.MaxRecords)
	if err != nil {
		return nil, err
	}

	set := s.normalizer.Normalize(res.Payloads, res.Partial)

	if res.Partial && len(set.Records) == 0 {
		if stored := s.storedSet(key); stored != nil {
			s.logger.Warnf(providers.TypeApp, "Backend unavailable for %s, serving snapshot data from %s", key, stored.FetchedAt)
			// Copy so the marker never leaks into the session store.
			stale := *stored
			stale.Stale = true
			return &stale, nil
		}
	}

	s.mu.Lock()
	s.sets[key] = set
	s.mu.Unlock()

	return set, nil
}

func (s *AnalyticsService) storedSet(key string) *models.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets[key]
}

func (s *AnalyticsService) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.NewSnapshot()
	// Stored sets are read-only once placed, so sharing them is safe.
	for k, v := range s.sets {
		snap.Sets[k] = v
	}
	snap.SavedAt = latestFetch(snap.Sets)
	return snap
}

func (s *AnalyticsService) RestoreSnapshot(snap *models.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range snap.Sets {
		if _, ok := s.sets[k]; !ok && v != nil {
			s.sets[k] = v
		}
	}
}

func (s *AnalyticsService) StoredSets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

func storeKey(userID string) string {
	if userID == "" {
		return wholeCorpusKey
	}
	return "user:" + userID
}

func latestFetch(sets map[string]*models.RecordSet) time.Time {
	var latest time.Time
	for _, set := range sets {
		if set != nil && set.FetchedAt.After(latest) {
			latest = set.FetchedAt
		}
	}
	return latest
}
