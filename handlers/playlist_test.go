package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/savid/epg-icons/config"
	"github.com/savid/epg-icons/internal/data"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	return store
}

func newUpstream(t *testing.T, file string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		body, err := os.ReadFile(file)
		require.NoError(t, err)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPlaylistHandlerMerge(t *testing.T) {
	m3uServer := newUpstream(t, "testdata/example.m3u")
	epgServer := newUpstream(t, "testdata/epg.xml")

	handler := NewPlaylistHandler(newTestStore(t), data.NewFetcher(5*time.Second, testLogger()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u?m3u="+m3uServer.URL+"&epg="+epgServer.URL, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/x-mpegurl", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	// tvg-id match.
	assert.Contains(t, body, `tvg-id="cnn.us" tvg-name="CNN HD" group-title="News" tvg-logo="http://x/cnn.png"`)
	// Case-insensitive tvg-name match against display-name "espn".
	assert.Contains(t, body, `tvg-name="ESPN" group-title="Sports" tvg-logo="http://x/espn.png"`)
	// No match leaves the entry without a logo.
	assert.Contains(t, body, `tvg-id="nomatch" tvg-name="No Match",Nothing Here`)
	assert.Contains(t, body, "#EXTM3U\n")
	assert.Contains(t, body, "http://stream/1\n")
}

func TestPlaylistHandlerMissingParams(t *testing.T) {
	handler := NewPlaylistHandler(newTestStore(t), data.NewFetcher(5*time.Second, testLogger()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "m3u")
	assert.Contains(t, rec.Body.String(), "epg")
}

func TestPlaylistHandlerConfiguredDefaults(t *testing.T) {
	m3uServer := newUpstream(t, "testdata/example.m3u")
	epgServer := newUpstream(t, "testdata/epg.xml")

	store := newTestStore(t)
	require.NoError(t, store.SetURLs(m3uServer.URL, epgServer.URL))

	handler := NewPlaylistHandler(store, data.NewFetcher(5*time.Second, testLogger()), testLogger())

	// No query parameters; configured defaults are used.
	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tvg-logo="http://x/cnn.png"`)
}

func TestPlaylistHandlerFetchFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)
	epgServer := newUpstream(t, "testdata/epg.xml")

	handler := NewPlaylistHandler(newTestStore(t), data.NewFetcher(5*time.Second, testLogger()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u?m3u="+failing.URL+"&epg="+epgServer.URL, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), failing.URL)
}

func TestPlaylistHandlerBadEPG(t *testing.T) {
	m3uServer := newUpstream(t, "testdata/example.m3u")
	badEPG := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<tv><channel id="))
	}))
	t.Cleanup(badEPG.Close)

	handler := NewPlaylistHandler(newTestStore(t), data.NewFetcher(5*time.Second, testLogger()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u?m3u="+m3uServer.URL+"&epg="+badEPG.URL, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlaylistHandlerBadPlaylist(t *testing.T) {
	badM3U := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not a playlist\n"))
	}))
	t.Cleanup(badM3U.Close)
	epgServer := newUpstream(t, "testdata/epg.xml")

	handler := NewPlaylistHandler(newTestStore(t), data.NewFetcher(5*time.Second, testLogger()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u?m3u="+badM3U.URL+"&epg="+epgServer.URL, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
