package testutil

import (
	"context"
	"sync"
	"time"

	"corpusdash/internal/models"
	"corpusdash/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface on a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) SetForever(key string, value []byte) {
	m.Set(key, value)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	CacheHits       int
	CacheMisses     int
	PagesFetched    int
	RecordsFetched  int
	RecordsRejected int
	FetchErrors     int
	Snapshots       int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 { m.inc(&m.Requests) }
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    { m.inc(&m.CacheHits) }
func (m *MockMetrics) IncCacheMisses()                                  { m.inc(&m.CacheMisses) }
func (m *MockMetrics) IncPagesFetched(_ string)                         { m.inc(&m.PagesFetched) }
func (m *MockMetrics) AddRecordsFetched(count int)                      { m.add(&m.RecordsFetched, count) }
func (m *MockMetrics) AddRecordsRejected(count int)                     { m.add(&m.RecordsRejected, count) }
func (m *MockMetrics) IncFetchErrors(_ string)                          { m.inc(&m.FetchErrors) }
func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration)          { m.inc(&m.Snapshots) }

func (m *MockMetrics) inc(field *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field++
}

func (m *MockMetrics) add(field *int, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field += n
}

// MockBackendClient implements corpus.BackendClientInterface from canned data.
type MockBackendClient struct {
	mu sync.Mutex

	RecordPages [][]models.RawRecord
	RecordsErr  error
	// PageErrs maps a page index (by call order) to a one-shot error.
	PageErrs map[int]error

	Categories    []models.Category
	CategoriesErr error

	Users    []models.BackendUser
	UsersErr error

	RecordCalls   int
	CategoryCalls int
	UserCalls     int
}

func (m *MockBackendClient) ListRecords(_ context.Context, _ string, _ models.RecordFilter, _, _ int) ([]models.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.RecordCalls
	m.RecordCalls++

	if m.RecordsErr != nil {
		return nil, m.RecordsErr
	}
	if err, ok := m.PageErrs[call]; ok {
		delete(m.PageErrs, call)
		return nil, err
	}
	if call >= len(m.RecordPages) {
		return nil, nil
	}
	return m.RecordPages[call], nil
}

func (m *MockBackendClient) ListCategories(_ context.Context, _ string) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CategoryCalls++
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return m.Categories, nil
}

func (m *MockBackendClient) ListUsers(_ context.Context, _ string, skip, limit int) ([]models.BackendUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserCalls++
	if m.UsersErr != nil {
		return nil, m.UsersErr
	}
	if skip >= len(m.Users) {
		return nil, nil
	}
	end := skip + limit
	if end > len(m.Users) {
		end = len(m.Users)
	}
	return m.Users[skip:end], nil
}
