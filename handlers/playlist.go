// Package handlers implements the HTTP boundary of the EPG icon merge server.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/savid/epg-icons/config"
	"github.com/savid/epg-icons/internal/data"
	"github.com/savid/epg-icons/internal/epg"
	"github.com/savid/epg-icons/internal/merge"
	"github.com/savid/epg-icons/internal/playlist"
	"github.com/sirupsen/logrus"
)

// PlaylistHandler serves the merged M3U playlist. Each request fetches and
// parses fresh copies of both documents; nothing is shared between requests.
type PlaylistHandler struct {
	store   *config.Store
	fetcher *data.Fetcher
	logger  *logrus.Logger
}

// NewPlaylistHandler creates a new playlist handler instance.
func NewPlaylistHandler(store *config.Store, fetcher *data.Fetcher, logger *logrus.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m3uURL := r.URL.Query().Get("m3u")
	epgURL := r.URL.Query().Get("epg")

	defaultM3U, defaultEPG := h.store.URLs()
	if m3uURL == "" {
		m3uURL = defaultM3U
	}
	if epgURL == "" {
		epgURL = defaultEPG
	}

	var missing []string
	if m3uURL == "" {
		missing = append(missing, "m3u")
	}
	if epgURL == "" {
		missing = append(missing, "epg")
	}
	if len(missing) > 0 {
		http.Error(w, fmt.Sprintf("missing required parameter(s): %s", strings.Join(missing, ", ")), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	m3uRaw, err := h.fetcher.Fetch(ctx, m3uURL)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch M3U")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	epgRaw, err := h.fetcher.Fetch(ctx, epgURL)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch EPG")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	index, channels, err := epg.Parse(epgRaw)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse EPG")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	doc, err := playlist.Parse(m3uRaw)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse M3U")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	matched := merge.Merge(doc, index)

	h.logger.WithFields(logrus.Fields{
		"epg_channels": channels,
		"entries":      doc.EntryCount(),
		"matched":      matched,
	}).Info("Merged playlist with EPG icons")

	w.Header().Set("Content-Type", "audio/x-mpegurl")
	_, _ = w.Write(playlist.Write(doc))
}
