package corpus

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"corpusdash/internal/models"
	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
)

// MaxPageSize is the largest page the backend accepts per request.
const MaxPageSize = 1000

// fetchState drives the pagination loop. Exit-condition precedence is the
// switch order in Fetch: safety bound, failure, short page, volume cap.
type fetchState int

const (
	stateFetching fetchState = iota
	stateDone
	statePartial
	stateFailed
)

// FetchResult carries raw pages in receive order. No cross-page sort is
// imposed here; ordering concerns belong to aggregation. When Partial is set,
// Reason says why: ErrVolumeExceeded for a volume or page-count bound, the
// last page error for retry exhaustion.
type FetchResult struct {
	Payloads []models.RawRecord
	Pages    int
	Partial  bool
	Reason   error
}

type FetcherInterface interface {
	Fetch(ctx context.Context, token string, filter models.RecordFilter, pageSize, maxTotal int) (*FetchResult, error)
}

type Fetcher struct {
	client  BackendClientInterface
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewFetcher(conf *structures.Config, client BackendClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) FetcherInterface {
	return &Fetcher{
		client:  client,
		conf:    conf,
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch walks the backend's records pagination sequentially until end of
// data, a volume bound, or an unrecoverable error. The gathered records are
// always returned; Partial marks any outcome other than a clean end of data.
// ErrAuthExpired is the only error surfaced, so callers can re-authenticate.
func (f *Fetcher) Fetch(ctx context.Context, token string, filter models.RecordFilter, pageSize, maxTotal int) (*FetchResult, error) {
	if pageSize <= 0 {
		pageSize = f.conf.Backend.PageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxTotal <= 0 {
		maxTotal = f.conf.Backend.MaxRecords
	}

	result := &FetchResult{}
	state := stateFetching
	var failure error

	skip := 0
	// The backend may enforce a smaller page cap than requested; the first
	// non-empty page tells us the cap actually in effect.
	effective := pageSize

	for state == stateFetching {
		if result.Pages >= f.conf.Backend.MaxPages {
			f.logger.Warnf(providers.TypeFetch, "Stopped after %d pages, source never signalled end of data", result.Pages)
			state = statePartial
			result.Reason = ErrVolumeExceeded
			break
		}

		limit := effective
		if remaining := maxTotal - len(result.Payloads); remaining < limit {
			limit = remaining
		}

		page, err := f.fetchPage(ctx, token, filter, skip, limit)
		if err != nil {
			if errors.Is(err, ErrAuthExpired) {
				state = stateFailed
				failure = err
				result.Reason = err
				break
			}
			f.metrics.IncFetchErrors("records")
			f.logger.Errorf(providers.TypeFetch, "Page fetch at skip=%d failed after retries, keeping %d records gathered so far: %s", skip, len(result.Payloads), err)
			state = statePartial
			result.Reason = err
			break
		}

		result.Pages++
		f.metrics.IncPagesFetched("records")
		result.Payloads = append(result.Payloads, page...)
		skip += len(page)

		switch {
		case len(page) == 0:
			state = stateDone
		case result.Pages == 1 && len(page) < limit:
			// Ambiguous: either end of data or a server-enforced cap. Probe
			// with the observed size; an empty follow-up page costs one
			// request and settles it.
			effective = len(page)
		case len(page) < limit:
			state = stateDone
		case len(result.Payloads) >= maxTotal:
			f.logger.Warnf(providers.TypeFetch, "Volume bound of %d records reached, not requesting further pages", maxTotal)
			state = statePartial
			result.Reason = ErrVolumeExceeded
		}
	}

	result.Partial = state == statePartial || state == stateFailed
	f.metrics.AddRecordsFetched(len(result.Payloads))
	f.logger.Infof(providers.TypeFetch, "Fetched %d records over %d pages (partial=%t)", len(result.Payloads), result.Pages, result.Partial)

	return result, failure
}

// fetchPage requests one page, retrying transient failures with bounded
// exponential backoff. Credential rejection and context cancellation are
// permanent.
func (f *Fetcher) fetchPage(ctx context.Context, token string, filter models.RecordFilter, skip, limit int) ([]models.RawRecord, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = f.conf.Backend.RetryBaseDelay

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(f.conf.Backend.RetryAttempts)), ctx)

	var page []models.RawRecord
	op := func() error {
		var err error
		page, err = f.client.ListRecords(ctx, token, filter, skip, limit)
		if err != nil {
			if errors.Is(err, ErrAuthExpired) {
				return backoff.Permanent(err)
			}
			f.logger.Warnf(providers.TypeFetch, "Transient failure at skip=%d: %s", skip, err)
			return err
		}
		return nil
	}

	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return page, nil
}
