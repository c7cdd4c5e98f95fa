package controllers

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusdash/internal/corpus"
	"corpusdash/internal/models"
	"corpusdash/internal/testutil"
)

// mockAnalyticsService records the arguments of the last call.
type mockAnalyticsService struct {
	summary  *models.AggregationResult
	compared *models.ComparisonResult
	insights []string
	table    *models.Table
	err      error

	lastUserID  string
	lastUserIDs []string
	lastG       models.Granularity
	calls       int
}

func (m *mockAnalyticsService) Summary(_ context.Context, _, userID string, g models.Granularity) (*models.AggregationResult, error) {
	m.calls++
	m.lastUserID, m.lastG = userID, g
	return m.summary, m.err
}

func (m *mockAnalyticsService) CompareUsers(_ context.Context, _, requesterID string, userIDs []string, g models.Granularity) (*models.ComparisonResult, error) {
	m.calls++
	m.lastUserID, m.lastUserIDs, m.lastG = requesterID, userIDs, g
	return m.compared, m.err
}

func (m *mockAnalyticsService) Insights(_ context.Context, _, userID string, g models.Granularity) ([]string, error) {
	m.calls++
	m.lastUserID, m.lastG = userID, g
	return m.insights, m.err
}

func (m *mockAnalyticsService) ExportRecords(_ context.Context, _, userID string) (*models.Table, error) {
	m.calls++
	m.lastUserID = userID
	return m.table, m.err
}

func (m *mockAnalyticsService) Snapshot() *models.Snapshot      { return models.NewSnapshot() }
func (m *mockAnalyticsService) RestoreSnapshot(*models.Snapshot) {}
func (m *mockAnalyticsService) StoredSets() int                 { return 0 }

func newApiTestController(svc *mockAnalyticsService) *ApiController {
	return NewApiController(&testutil.MockLogger{}, svc, testutil.NewMockCache())
}

// signedToken builds an unsigned JWT carrying the given claims.
func signedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func authedRequest(t *testing.T, target string, claims map[string]any) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, claims))
	return req
}

func TestGetSummary_RequiresBearer(t *testing.T) {
	svc := &mockAnalyticsService{}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetSummary(w, httptest.NewRequest(http.MethodGet, "/summary", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls)
}

func TestGetSummary_DefaultsToTokenSubject(t *testing.T) {
	svc := &mockAnalyticsService{summary: models.NewAggregationResult(models.GranularityDay)}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetSummary(w, authedRequest(t, "/summary", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "user-7", svc.lastUserID)
	assert.Equal(t, models.GranularityDay, svc.lastG)
}

func TestGetSummary_ExplicitUserAndGranularity(t *testing.T) {
	svc := &mockAnalyticsService{summary: models.NewAggregationResult(models.GranularityWeek)}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetSummary(w, authedRequest(t, "/summary?user_id=other&granularity=week", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "other", svc.lastUserID)
	assert.Equal(t, models.GranularityWeek, svc.lastG)
}

func TestGetSummary_SecondCallServedFromCache(t *testing.T) {
	svc := &mockAnalyticsService{summary: models.NewAggregationResult(models.GranularityDay)}
	ac := newApiTestController(svc)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		ac.GetSummary(w, authedRequest(t, "/summary", map[string]any{"sub": "user-7"}))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 1, svc.calls)
}

func TestGetSummary_AuthExpiryIs401(t *testing.T) {
	svc := &mockAnalyticsService{err: corpus.ErrAuthExpired}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetSummary(w, authedRequest(t, "/summary", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSummary_ServiceFailureIs500(t *testing.T) {
	svc := &mockAnalyticsService{err: &corpus.TransportError{Op: "list records", Status: 503}}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetSummary(w, authedRequest(t, "/summary", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetComparison_RequiresUserIDs(t *testing.T) {
	svc := &mockAnalyticsService{}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetComparison(w, authedRequest(t, "/compare", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestGetComparison_ParsesUserList(t *testing.T) {
	svc := &mockAnalyticsService{compared: &models.ComparisonResult{}}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetComparison(w, authedRequest(t, "/compare?user_ids=u1,%20u2,,u3", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", svc.lastUserID)
	assert.Equal(t, []string{"u1", "u2", "u3"}, svc.lastUserIDs)
}

func TestGetInsights(t *testing.T) {
	svc := &mockAnalyticsService{insights: []string{"Dominant media type is audio with 3 of 5 records (60.0%)"}}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.GetInsights(w, authedRequest(t, "/insights?granularity=month", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GranularityMonth, svc.lastG)

	var lines []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Len(t, lines, 1)
}

func TestExportRecords(t *testing.T) {
	table := models.NewTable("id", "user_id")
	table.AddRow("r1", "u1")
	svc := &mockAnalyticsService{table: table}
	ac := newApiTestController(svc)

	w := httptest.NewRecorder()
	ac.ExportRecords(w, authedRequest(t, "/export/records", map[string]any{"sub": "user-7"}))

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Len())
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", bearerToken(req))

	req.Header.Set("Authorization", "bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", bearerToken(req), "scheme comparison is case-insensitive")
}

func TestSubjectFromToken(t *testing.T) {
	assert.Equal(t, "user-7", subjectFromToken(signedToken(t, map[string]any{"sub": "user-7"})))
	assert.Equal(t, "user-9", subjectFromToken(signedToken(t, map[string]any{"user_id": "user-9"})))
	assert.Empty(t, subjectFromToken("not-a-jwt"))
}
