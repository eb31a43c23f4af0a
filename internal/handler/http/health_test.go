package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type fakeBreaker struct {
	name string
	open bool
}

func (f fakeBreaker) Name() string { return f.name }
func (f fakeBreaker) IsOpen() bool { return f.open }
func (f fakeBreaker) StateString() string {
	if f.open {
		return "open"
	}
	return "closed"
}

func TestHealthHandler_Healthy(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)

	mock.ExpectPing()

	handler := &HealthHandler{DB: db, Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d, want 200", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" {
		t.Fatalf("status=%q", body.Status)
	}
	if body.Version != "test" {
		t.Fatalf("version=%q", body.Version)
	}
	if body.Checks["database"].Status != "healthy" {
		t.Fatalf("database check=%+v", body.Checks["database"])
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	handler := &HealthHandler{DB: db, Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d, want 503", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "unhealthy" {
		t.Fatalf("status=%q", body.Status)
	}
}

func TestHealthHandler_NoDatabase(t *testing.T) {
	handler := &HealthHandler{Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d, want 503", rec.Code)
	}
}

func TestHealthHandler_OpenBreakerDegradesNotFails(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test",
		Breakers: []BreakerState{
			fakeBreaker{name: "article-fetch", open: false},
			fakeBreaker{name: "openai-api", open: true},
		},
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// An unreachable LLM degrades summarization but history still works.
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d, want 200", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	upstreams := body.Checks["upstreams"]
	if upstreams.Status != "degraded" {
		t.Fatalf("upstreams=%+v", upstreams)
	}
	if upstreams.Details["openai-api"] != "open" {
		t.Fatalf("details=%v", upstreams.Details)
	}
}

func TestReadyHandler(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	handler := &ReadyHandler{DB: db}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	if rec.Body.String() != "ready" {
		t.Fatalf("body=%q", rec.Body.String())
	}
}

func TestReadyHandler_DatabaseDown(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()

	mock.ExpectPing().WillReturnError(errors.New("dial refused"))

	handler := &ReadyHandler{DB: db}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "alive" {
		t.Fatalf("code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestAliveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&AliveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alive", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body=%v", body)
	}
	if body["message"] == "" {
		t.Fatalf("body=%v, want a message field", body)
	}
}
