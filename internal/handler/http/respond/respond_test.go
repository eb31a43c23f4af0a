package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Fatalf("code=%d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type=%q", ct)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["n"] != 1 {
		t.Fatalf("body=%v", body)
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantBody string
	}{
		{
			name:     "validation message passes through",
			code:     http.StatusBadRequest,
			err:      errors.New("url is required"),
			wantBody: "url is required",
		},
		{
			name:     "quota message passes through",
			code:     http.StatusPaymentRequired,
			err:      errors.New("summarization quota exhausted"),
			wantBody: "quota exhausted",
		},
		{
			name:     "internal detail is masked",
			code:     http.StatusBadRequest,
			err:      errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantBody: "internal server error",
		},
		{
			name:     "500 never exposes even safe-looking messages",
			code:     http.StatusInternalServerError,
			err:      errors.New("invalid state in summarizer"),
			wantBody: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			if rec.Code != tt.code {
				t.Fatalf("code=%d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body=%q, want substring %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSafeErrorV2_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	appErr := NewAppError(http.StatusInternalServerError, "payment failed",
		errors.New("provider returned 503 with key sk-abcdefghij123"))
	SafeErrorV2(rec, http.StatusInternalServerError, appErr)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "payment failed") {
		t.Fatalf("body=%q, want user message", body)
	}
	if strings.Contains(body, "sk-abcdefghij123") {
		t.Fatalf("body leaked internal error: %q", body)
	}
}

func TestSafeErrorV2_FallsBackToSafeError(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeErrorV2(rec, http.StatusNotFound, errors.New("summary not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("code=%d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("body=%q", rec.Body.String())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	appErr := NewAppError(500, "outer", inner)
	if !errors.Is(appErr, inner) {
		t.Fatal("errors.Is should reach the wrapped error")
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "openai key",
			err:  errors.New("auth failed for sk-abcdefghij0123456789"),
			want: "auth failed for sk-****",
		},
		{
			name: "anthropic key",
			err:  errors.New("auth failed for sk-ant-api03-xyz123"),
			want: "auth failed for sk-ant-****",
		},
		{
			name: "dsn password",
			err:  errors.New(`connect postgres://digest:hunter2@db:5432/digest failed`),
			want: "postgres://digest:****@db:5432/digest",
		},
		{
			name: "plain message untouched",
			err:  errors.New("no article content found"),
			want: "no article content found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeError(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("got %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeError_Nil(t *testing.T) {
	if got := SanitizeError(nil); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
