package corpus

import (
	"context"

	"corpusdash/internal/providers"
)

// Uncategorized is the stable sentinel label for null, unknown and
// unresolvable category identifiers.
const Uncategorized = "Uncategorized"

const categoryKeyPrefix = "cat:"

// CategoryResolver maps opaque category identifiers to display names. The
// mapping lives in an explicitly owned cache for the process lifetime; an
// identifier is looked up against the backend at most once per session, and
// failures are negative-cached under the sentinel so they never repeat.
// Concurrent misses may race into redundant listings, which is acceptable:
// resolution is idempotent and cheap to repeat.
type CategoryResolver struct {
	client BackendClientInterface
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewCategoryResolver(client BackendClientInterface, cache providers.CacheProviderInterface, logger providers.Logger) *CategoryResolver {
	return &CategoryResolver{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Resolve returns the display name for categoryID. It never fails the
// caller: any miss or transport problem yields the sentinel label.
func (r *CategoryResolver) Resolve(ctx context.Context, token, categoryID string) string {
	if categoryID == "" {
		return Uncategorized
	}

	if name, ok := r.cache.Get(categoryKeyPrefix + categoryID); ok {
		return string(name)
	}

	categories, err := r.client.ListCategories(ctx, token)
	if err != nil {
		r.logger.Warnf(providers.TypeFetch, "Category listing failed, resolving %s to sentinel: %s", categoryID, err)
		r.cache.SetForever(categoryKeyPrefix+categoryID, []byte(Uncategorized))
		return Uncategorized
	}

	for _, cat := range categories {
		if cat.ID != "" && cat.Name != "" {
			r.cache.SetForever(categoryKeyPrefix+cat.ID, []byte(cat.Name))
		}
	}

	if name, ok := r.cache.Get(categoryKeyPrefix + categoryID); ok {
		return string(name)
	}

	// Not part of the taxonomy. Cache the sentinel so the listing is not
	// re-fetched for this identifier.
	r.cache.SetForever(categoryKeyPrefix+categoryID, []byte(Uncategorized))
	return Uncategorized
}
