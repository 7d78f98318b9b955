package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dx01/dx01-api/database"
	"github.com/dx01/dx01-api/models"
)

type recordingStore struct {
	visits []models.Visit
	err    error
}

func (s *recordingStore) RecordVisit(_ context.Context, v models.Visit) database.BestEffort {
	s.visits = append(s.visits, v)
	return database.BestEffort{Err: s.err}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestVisitRecorder(t *testing.T) {
	store := &recordingStore{}
	available := true
	r := gin.New()
	r.GET("/api", VisitRecorder(store, func() bool { return available }), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("User-Agent", "dashboard/1.0")
	req.RemoteAddr = "203.0.113.9:51234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if len(store.visits) != 1 {
		t.Fatalf("recorded %d visits, want 1", len(store.visits))
	}
	v := store.visits[0]
	if *v.Path != "/api" || *v.UserAgent != "dashboard/1.0" || *v.IPAddress != "203.0.113.9" {
		t.Fatalf("visit = path %q ua %q ip %q", *v.Path, *v.UserAgent, *v.IPAddress)
	}

	available = false
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))
	if len(store.visits) != 1 {
		t.Fatalf("recorded a visit while the database is unavailable")
	}
}

func TestVisitRecorderFailureIsInvisible(t *testing.T) {
	store := &recordingStore{err: errors.New("insert failed")}
	r := gin.New()
	r.GET("/api", VisitRecorder(store, func() bool { return true }), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("response = %d %q", w.Code, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/api/users", RateLimit(2), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users", nil))
		codes = append(codes, w.Code)
	}
	// burst is perMinute/2 = 1
	if codes[0] != http.StatusCreated || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(requestIDHeader)) != 36 {
		t.Fatalf("generated id = %q", w.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("propagated id = %q", got)
	}
}
