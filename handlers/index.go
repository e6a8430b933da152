package handlers

import (
	"html/template"
	"net/http"

	"github.com/savid/epg-icons/config"
	"github.com/sirupsen/logrus"
)

const indexPage = `<!DOCTYPE html>
<html>
<head>
	<title>EPG to M3U Icons Merger</title>
</head>
<body>
	<h1>EPG to M3U Icons Merger</h1>
	<p>This service merges channel icons from an EPG into an M3U playlist.</p>
	{{if .Configured}}
	<p>URLs are configured. You can use <code>/playlist.m3u</code> directly.</p>
	{{else}}
	<p>URLs not configured. Visit <a href="/settings">Settings</a> to configure your URLs.</p>
	{{end}}
	<p><a href="/settings">Configure Settings</a></p>
	<h2>Usage</h2>
	<pre>GET /playlist.m3u?m3u=&lt;M3U_URL&gt;&amp;epg=&lt;EPG_URL&gt;</pre>
	<ul>
		<li><strong>m3u</strong> - URL to your M3U playlist (optional if configured in settings)</li>
		<li><strong>epg</strong> - URL to your EPG/XMLTV file (optional if configured in settings)</li>
	</ul>
	<p>Use the resulting URL in your IPTV player to get your playlist with updated channel icons.</p>
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexPage))

// IndexHandler serves the usage page.
type IndexHandler struct {
	store  *config.Store
	logger *logrus.Logger
}

// NewIndexHandler creates a new index handler instance.
func NewIndexHandler(store *config.Store, logger *logrus.Logger) *IndexHandler {
	return &IndexHandler{
		store:  store,
		logger: logger,
	}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	m3uURL, epgURL := h.store.URLs()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Configured bool
	}{m3uURL != "" && epgURL != ""}); err != nil {
		h.logger.WithError(err).Error("Failed to render index page")
	}
}
