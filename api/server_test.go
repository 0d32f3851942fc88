package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"newsflow/deduplication"
	"newsflow/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(trigger func()) (*gin.Engine, *deduplication.Filter) {
	store := deduplication.NewMemoryStore("news:dedup", time.Hour)
	filter := deduplication.NewFilter(store, time.Hour)
	return NewRouter(Deps{Filter: filter, TriggerPoll: trigger}), filter
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestDedupStatsAndClear(t *testing.T) {
	router, filter := newTestRouter(nil)

	filter.MarkSeen(context.Background(), &types.NewsArticle{
		Source: types.NewsSource{Name: "Test Wire"},
		Title:  "Alpha story",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dedup/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", w.Code)
	}
	var stats deduplication.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("total keys = %d, want 1", stats.TotalKeys)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/dedup/clear", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", w.Code)
	}
	var cleared struct {
		Deleted int64 `json:"deleted_keys"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cleared); err != nil {
		t.Fatalf("decode clear response: %v", err)
	}
	if cleared.Deleted != 1 {
		t.Errorf("deleted_keys = %d, want 1", cleared.Deleted)
	}
}

func TestManualPollTrigger(t *testing.T) {
	triggers := 0
	router, _ := newTestRouter(func() { triggers++ })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/poll", nil))

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if triggers != 1 {
		t.Errorf("trigger called %d times, want 1", triggers)
	}
}
