package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Set(zap.NewNop().Sugar())
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	t.Run("generates_id", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/ping", nil)
		id := rec.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected uuid request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("expected handler to see %q, got %q", id, rec.Body.String())
		}
	})

	t.Run("keeps_incoming_id", func(t *testing.T) {
		incoming := uuid.New().String()
		rec := serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": incoming})
		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %q, got %q", incoming, got)
		}
	})

	t.Run("replaces_garbage_id", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": "<script>"})
		if got := rec.Header().Get("X-Request-ID"); got == "<script>" {
			t.Error("expected invalid request id to be replaced")
		}
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected error envelope, got %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code, body.Error.Message
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperrors.ErrTransactionNotFound) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/written", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
		_ = c.Error(errors.New("late"))
	})

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/app", http.StatusNotFound, "TRANSACTION_NOT_FOUND"},
		{"/raw", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		rec := serve(r, http.MethodGet, tt.path, nil)
		if rec.Code != tt.wantCode {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantCode, rec.Code)
		}
		code, message := decodeEnvelope(t, rec)
		if code != tt.wantErr {
			t.Errorf("%s: expected code %s, got %s", tt.path, tt.wantErr, code)
		}
		if strings.Contains(message, "boom") {
			t.Errorf("%s: internal error leaked to client: %q", tt.path, message)
		}
	}

	if rec := serve(r, http.MethodGet, "/written", nil); rec.Code != http.StatusAccepted {
		t.Errorf("expected handler status to be kept, got %d", rec.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), RequestLogging())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	rec := serve(r, http.MethodGet, "/panic", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if code, _ := decodeEnvelope(t, rec); code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", code)
	}
}

func TestNotFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound)

	rec := serve(r, http.MethodDelete, "/api/v1/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	code, message := decodeEnvelope(t, rec)
	if code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
	if message != "No route for DELETE /api/v1/nope" {
		t.Errorf("unexpected message %q", message)
	}
}

func TestMetrics(t *testing.T) {
	reg := metrics.New()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/transactions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/transactions/a", nil)
	serve(r, http.MethodGet, "/transactions/b", nil)
	serve(r, http.MethodGet, "/nowhere", nil)

	if got := testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("GET", "/transactions/:id", "200")); got != 2 {
		t.Errorf("expected 2 requests on route template, got %v", got)
	}
	if got := testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://localhost:3000"})
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("expected allowed origin to be echoed")
	}

	rec = serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://evil.test"})
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected unknown origin to be rejected")
	}

	rec = serve(r, http.MethodOptions, "/x", map[string]string{"Origin": "http://localhost:3000"})
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestRequestLoggingLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Set(zap.NewNop().Sugar()) })

	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	for path, want := range map[string]zapcore.Level{
		"/api/health": zapcore.DebugLevel,
		"/bad":        zapcore.WarnLevel,
		"/fail":       zapcore.ErrorLevel,
	} {
		serve(r, http.MethodGet, path, nil)
		entries := logs.FilterMessage("GET " + path).All()
		if len(entries) != 1 {
			t.Fatalf("%s: expected one log line, got %d", path, len(entries))
		}
		if entries[0].Level != want {
			t.Errorf("%s: expected level %s, got %s", path, want, entries[0].Level)
		}
		if entries[0].LoggerName != "http" {
			t.Errorf("%s: expected http logger, got %q", path, entries[0].LoggerName)
		}
	}
}
