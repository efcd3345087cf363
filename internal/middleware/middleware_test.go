package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/listing-web/internal/observability"
)

func TestLocaleMiddleware(t *testing.T) {
	var got string
	h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=fr-CH", nil))
	assert.Equal(t, "fr-CH", got)
	assert.Equal(t, "fr-CH", rec.Header().Get("Content-Language"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=xx", nil))
	assert.Equal(t, "de-CH", got)
	assert.Equal(t, "de-CH", rec.Header().Get("Content-Language"))
}

func TestLangWithoutMiddleware(t *testing.T) {
	assert.Equal(t, "en", Lang(httptest.NewRequest(http.MethodGet, "/?lang=en", nil)))
	assert.Equal(t, "de-CH", Lang(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestLoggerRecordsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var scoped *zap.Logger
	h := chiMid.RequestID(Logger(zap.New(core))(Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped = observability.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}))))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?lang=it-CH", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(len("short and stout")), fields["bytes"])
	assert.Equal(t, "it-CH", fields["locale"])
	assert.NotEmpty(t, fields["request_id"])
	assert.NotNil(t, scoped)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/object.json", nil)
	req = req.WithContext(WithRequestID(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadGateway, "document unavailable")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "document unavailable", RequestID: "rid-1"}, body)
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{
		"listing.css": {Data: []byte("body{margin:0}")},
	}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/listing.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{margin:0}", rec.Body.String())
	assert.Equal(t, assetCacheControl, rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/listing.css", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("ETag"))
}
