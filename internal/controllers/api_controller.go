package controllers

import (
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"corpusdash/internal/corpus"
	"corpusdash/internal/models"
	"corpusdash/internal/providers"
	"corpusdash/internal/services"
)

type ApiController struct {
	logger  providers.Logger
	service services.AnalyticsServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.AnalyticsServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func granularityParam(r *http.Request) models.Granularity {
	return models.ParseGranularity(r.URL.Query().Get("granularity"))
}

// targetUser resolves the user a request is about: the explicit user_id
// query parameter, falling back to the caller's own token subject.
func targetUser(r *http.Request, token string) string {
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		return userID
	}
	return subjectFromToken(token)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, corpus.ErrAuthExpired) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ac.logger.Errorf(providers.TypeGet, "Request failed: %s", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := targetUser(r, token)
	g := granularityParam(r)

	ac.serveFromCacheOrCompute(w, "summary:"+userID+":"+string(g), func() (any, error) {
		return ac.service.Summary(r.Context(), token, userID, g)
	})
}

func (ac *ApiController) GetComparison(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rawIDs := r.URL.Query().Get("user_ids")
	if rawIDs == "" {
		http.Error(w, "Bad Request: user_ids is required", http.StatusBadRequest)
		return
	}
	var userIDs []string
	for _, id := range strings.Split(rawIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}

	requester := targetUser(r, token)
	g := granularityParam(r)

	ac.serveFromCacheOrCompute(w, "compare:"+requester+":"+rawIDs+":"+string(g), func() (any, error) {
		return ac.service.CompareUsers(r.Context(), token, requester, userIDs, g)
	})
}

func (ac *ApiController) GetInsights(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := targetUser(r, token)
	g := granularityParam(r)

	ac.serveFromCacheOrCompute(w, "insights:"+userID+":"+string(g), func() (any, error) {
		return ac.service.Insights(r.Context(), token, userID, g)
	})
}

func (ac *ApiController) ExportRecords(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := targetUser(r, token)

	ac.serveFromCacheOrCompute(w, "export:"+userID, func() (any, error) {
		return ac.service.ExportRecords(r.Context(), token, userID)
	})
}
