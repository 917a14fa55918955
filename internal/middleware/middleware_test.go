package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mkdugri-blog/Linux-boot/internal/logging"
)

func TestHTMXMarksContext(t *testing.T) {
	var seen bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IsHTMX(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, seen)
}

func TestBasePathStoresRequestInfo(t *testing.T) {
	var info *RequestInfo
	h := BasePath("Linux-boot/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, _ = RequestInfoFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/Linux-boot/menu", nil))

	require.NotNil(t, info)
	require.Equal(t, "/Linux-boot", info.BasePath)
	require.Equal(t, "/Linux-boot/menu", info.Path)
	require.Equal(t, http.MethodPost, info.Method)
}

func TestBasePathFromContextDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "/", BasePathFromContext(req.Context()))
}

func TestWriteError(t *testing.T) {
	t.Run("htmx gets json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithHTMX(req.Context(), true))
		rec := httptest.NewRecorder()
		WriteError(rec, req, http.StatusBadRequest, "bad step")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		require.JSONEq(t, `{"error":"bad step"}`, rec.Body.String())
	})
	t.Run("browser gets text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		require.Contains(t, rec.Body.String(), "missing")
	})
}

func TestTriggerAndPushURL(t *testing.T) {
	rec := httptest.NewRecorder()
	PushURL(rec, "/steps/6")
	require.NoError(t, Trigger(rec, "share:plan", map[string]string{"method": "clipboard"}))
	require.Equal(t, "/steps/6", rec.Header().Get("HX-Push-Url"))
	require.JSONEq(t, `{"share:plan":{"method":"clipboard"}}`, rec.Header().Get("HX-Trigger"))
}

func TestLoggerRecordsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var ctxLogger *zap.Logger
	h := chiMid.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logging.FromContext(r.Context())
		_, ok := RequestID(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/steps/3", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, ctxLogger)
	entries := logs.All()
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	require.Equal(t, "/steps/3", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.EqualValues(t, len("short and stout"), fields["bytes"])
	require.Equal(t, "203.0.113.9", fields["remote_ip"])
	require.NotEmpty(t, fields["request_id"])
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{
		"css/site.css": {Data: []byte("body{margin:0}")},
	}
	h := AssetsWithCache(fsys)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{margin:0}", rec.Body.String())
	et := rec.Header().Get("ETag")
	require.Equal(t, ETag([]byte("body{margin:0}")), et)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/css/site.css", nil)
	req.Header.Set("If-None-Match", et)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	require.Equal(t, "192.0.2.10", clientIP(req))
	req.Header.Set("X-Real-IP", "198.51.100.4")
	require.Equal(t, "198.51.100.4", clientIP(req))
}
