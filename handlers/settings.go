package handlers

import (
	"html/template"
	"net/http"

	"github.com/savid/epg-icons/config"
	"github.com/sirupsen/logrus"
)

const settingsPage = `<!DOCTYPE html>
<html>
<head>
	<title>Settings - EPG to M3U Icons</title>
</head>
<body>
	<p><a href="/">&larr; Back to Home</a></p>
	<h1>Settings</h1>
	{{if .Saved}}<p><strong>Settings saved successfully!</strong></p>{{end}}
	<form method="POST">
		<p>
			<label for="m3u_url">M3U Playlist URL:</label><br>
			<input type="text" id="m3u_url" name="m3u_url" size="80" value="{{.M3UURL}}" placeholder="http://example.com/playlist.m3u">
		</p>
		<p>
			<label for="epg_url">EPG/XMLTV URL:</label><br>
			<input type="text" id="epg_url" name="epg_url" size="80" value="{{.EPGURL}}" placeholder="http://example.com/epg.xml">
		</p>
		<button type="submit">Save Settings</button>
	</form>
	{{if and .M3UURL .EPGURL}}
	<p>Your playlist URL: <code>/playlist.m3u</code></p>
	{{end}}
</body>
</html>
`

var settingsTemplate = template.Must(template.New("settings").Parse(settingsPage))

// SettingsHandler renders the settings form and persists submitted default URLs.
type SettingsHandler struct {
	store  *config.Store
	logger *logrus.Logger
}

// NewSettingsHandler creates a new settings handler instance.
func NewSettingsHandler(store *config.Store, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	saved := false

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		m3uURL := r.PostFormValue("m3u_url")
		epgURL := r.PostFormValue("epg_url")

		if err := h.store.SetURLs(m3uURL, epgURL); err != nil {
			h.logger.WithError(err).Error("Failed to save settings")
			http.Error(w, "failed to save settings", http.StatusInternalServerError)
			return
		}

		h.logger.WithFields(logrus.Fields{
			"m3u": m3uURL,
			"epg": epgURL,
		}).Info("Settings updated")
		saved = true
	}

	m3uURL, epgURL := h.store.URLs()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := settingsTemplate.Execute(w, struct {
		M3UURL string
		EPGURL string
		Saved  bool
	}{m3uURL, epgURL, saved}); err != nil {
		h.logger.WithError(err).Error("Failed to render settings page")
	}
}
