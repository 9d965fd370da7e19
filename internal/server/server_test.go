package server

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ledgerline/glyphcode/encoder"
	"github.com/ledgerline/glyphcode/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	return New(config.DefaultConfig(), zap.New(core)), logs
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestCodeFormats(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
	}{
		{"svg", "image/svg+xml"},
		{"png", "image/png"},
		{"text", "text/plain; charset=utf-8"},
		{"json", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := get(t, s, "/v1/codes/"+tt.format+"?value=XJO-1&size=180")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestCodePNGDimensions(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/codes/png?value=abc&size=105&fg=%23102030")
	require.Equal(t, http.StatusOK, rec.Code)

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 105, img.Bounds().Dx())
	assert.Equal(t, 105, img.Bounds().Dy())
}

func TestCodeErrors(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		target string
		status int
		errMsg string
	}{
		{"/v1/codes/gif?value=x", http.StatusNotFound, "unknown output format"},
		{"/v1/codes/svg?value=x&size=0", http.StatusBadRequest, "invalid canvas size"},
		{"/v1/codes/svg?value=x&size=-5", http.StatusBadRequest, "invalid canvas size"},
		{"/v1/codes/png?value=x&size=1e20", http.StatusBadRequest, "exceeds the limit"},
		{"/v1/codes/svg?value=x&size=1e20", http.StatusBadRequest, "exceeds the limit"},
		{"/v1/codes/png?value=x&size=4096.5", http.StatusBadRequest, "exceeds the limit"},
		{"/v1/codes/png?value=x&size=Inf", http.StatusBadRequest, "exceeds the limit"},
		{"/v1/codes/png?value=x&size=NaN", http.StatusBadRequest, "must be positive"},
		{"/v1/codes/svg?value=x&size=big", http.StatusBadRequest, "size must be a number"},
		{"/v1/codes/svg?value=x&logo_size=wide", http.StatusBadRequest, "logo_size must be a number"},
		{"/v1/codes/svg?value=x&bg=zzz", http.StatusBadRequest, "invalid color"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.errMsg)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestCodeSizeLimitFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Render.MaxSize = 64
	s := New(cfg, zap.NewNop())

	assert.Equal(t, http.StatusOK, get(t, s, "/v1/codes/png?value=x&size=64").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/v1/codes/png?value=x&size=65").Code)
}

func TestMatrix(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/matrix?value=XJO-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body matrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	m := encoder.Generate("XJO-1")
	assert.Equal(t, "XJO-1", body.Value)
	assert.Equal(t, 21, body.Dimension)
	assert.Equal(t, 335, body.Checksum)
	assert.Equal(t, m.DarkCount(), body.Dark)
	assert.Equal(t, m.Rows(), body.Rows)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/matrix", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	s, logs := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	generated := get(t, s, "/healthz").Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, logs := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "OK\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, 1, logs.FilterMessage("server shutting down").Len())
}

func TestRunRejectsBadAddress(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "not an address"
	err := New(cfg, zap.NewNop()).Run(context.Background())
	assert.ErrorContains(t, err, "failed to listen")
}

func TestTextBody(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/codes/txt?value=abc&logo_size=-1")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 21)
	assert.True(t, strings.HasPrefix(lines[0], "██████████████"))
}
