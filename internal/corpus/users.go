package corpus

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
)

// UnknownUser is rendered when a user identifier has no display name.
const UnknownUser = "Unknown User"

// UserDirectory resolves user identifiers to display names for rankings and
// leaderboards. Names sit in a TTL LRU; on a miss the whole backend user
// listing is walked once (same pagination discipline as the record fetcher)
// and the LRU is refilled.
type UserDirectory struct {
	client BackendClientInterface
	names  *expirable.LRU[string, string]
	conf   *structures.Config
	logger providers.Logger
}

func NewUserDirectory(conf *structures.Config, client BackendClientInterface, logger providers.Logger) *UserDirectory {
	return &UserDirectory{
		client: client,
		names:  expirable.NewLRU[string, string](conf.Directory.Size, nil, conf.Directory.TTL),
		conf:   conf,
		logger: logger,
	}
}

// DisplayName returns the display name for userID, or UnknownUser. Failures
// to reach the backend are not fatal; the caller gets the fallback label.
func (d *UserDirectory) DisplayName(ctx context.Context, token, userID string) string {
	if userID == "" {
		return UnknownUser
	}
	if name, ok := d.names.Get(userID); ok {
		return name
	}

	if err := d.refill(ctx, token); err != nil {
		d.logger.Warnf(providers.TypeFetch, "User listing failed, rendering %s as unknown: %s", userID, err)
		return UnknownUser
	}

	if name, ok := d.names.Get(userID); ok {
		return name
	}
	// Negative entry: the id is not in the directory right now, do not walk
	// the listing again for it until the TTL passes.
	d.names.Add(userID, UnknownUser)
	return UnknownUser
}

func (d *UserDirectory) refill(ctx context.Context, token string) error {
	skip := 0
	limit := d.conf.Backend.PageSize
	loaded := 0

	for page := 0; page < d.conf.Backend.MaxPages; page++ {
		users, err := d.client.ListUsers(ctx, token, skip, limit)
		if err != nil {
			if loaded > 0 {
				// Keep what was learned from earlier pages.
				d.logger.Warnf(providers.TypeFetch, "User listing interrupted after %d entries: %s", loaded, err)
				return nil
			}
			return err
		}
		for _, u := range users {
			if u.ID != "" && u.Name != "" {
				d.names.Add(u.ID, u.Name)
				loaded++
			}
		}
		if len(users) < limit {
			break
		}
		skip += len(users)
	}

	d.logger.Infof(providers.TypeFetch, "User directory refilled with %d names", loaded)
	return nil
}
