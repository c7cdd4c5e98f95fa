package corpus

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"corpusdash/internal/models"
	"corpusdash/internal/providers"
	"corpusdash/internal/structures"
)

// BackendClientInterface is the transport boundary to the corpus backend.
// Every call attaches the caller's bearer credential; the engine never logs
// in by itself.
type BackendClientInterface interface {
	ListRecords(ctx context.Context, token string, filter models.RecordFilter, skip, limit int) ([]models.RawRecord, error)
	ListCategories(ctx context.Context, token string) ([]models.Category, error)
	ListUsers(ctx context.Context, token string, skip, limit int) ([]models.BackendUser, error)
}

type BackendClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  providers.Logger
}

func NewBackendClient(conf *structures.Config, logger providers.Logger) BackendClientInterface {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "corpus-backend",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Credential problems say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrAuthExpired)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf(providers.TypeFetch, "Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &BackendClient{
		baseURL: conf.Backend.BaseURL,
		client:  &http.Client{Timeout: conf.Backend.Timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *BackendClient) ListRecords(ctx context.Context, token string, filter models.RecordFilter, skip, limit int) ([]models.RawRecord, error) {
	query := url.Values{}
	if filter.UserID != "" {
		query.Set("user_id", filter.UserID)
	}
	if filter.CategoryID != "" {
		query.Set("category_id", filter.CategoryID)
	}
	if filter.MediaType != "" {
		query.Set("media_type", filter.MediaType)
	}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "list records", "/records/", token, query)
	if err != nil {
		return nil, err
	}

	var records []models.RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &TransportError{Op: "decode records page", Err: err}
	}
	return records, nil
}

func (c *BackendClient) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	body, err := c.get(ctx, "list categories", "/categories/", token, nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, &TransportError{Op: "decode categories", Err: err}
	}
	return categories, nil
}

func (c *BackendClient) ListUsers(ctx context.Context, token string, skip, limit int) ([]models.BackendUser, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "list users", "/users/", token, query)
	if err != nil {
		return nil, err
	}

	var users []models.BackendUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, &TransportError{Op: "decode users page", Err: err}
	}
	return users, nil
}

func (c *BackendClient) get(ctx context.Context, op, path, token string, query url.Values) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		target := c.baseURL + path
		if len(query) > 0 {
			target += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrAuthExpired
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &TransportError{Op: op, Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		return body, nil
	})
}
