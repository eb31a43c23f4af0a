package http

import (
	"log"
	"net/http"
)

const infoPage = `<!DOCTYPE html>
<html>
<head><title>Medium Digest API</title></head>
<body>
<h1>Medium Digest API</h1>
<p>Summarizes Medium articles into short bulleted digests.</p>
<ul>
<li><code>POST /api/summarize</code> - summarize a Medium article ({"url": "..."})</li>
<li><code>POST /api/subscribe</code> - top up the summarization quota</li>
<li><code>GET /api/history</code> - list stored summaries</li>
<li><code>DELETE /api/delete/{id}</code> - delete a stored summary</li>
<li><code>GET /alive</code> - liveness check</li>
</ul>
</body>
</html>
`

// InfoHandler serves a small HTML page describing the API at the root path.
type InfoHandler struct{}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(infoPage)); err != nil {
		log.Printf("info: failed to write response: %v", err)
	}
}
