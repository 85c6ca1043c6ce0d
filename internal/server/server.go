package server

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Routes builds the process-wide mux. Only GET (and implicitly HEAD) is
// accepted on each route; the mux answers 405 for anything else.
func Routes(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /emotionDetector", h.EmotionDetector)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /static/", staticFiles())
	mux.HandleFunc("GET /{$}", h.Index)

	return logRequests(mux)
}

// staticFiles serves the embedded assets without directory listings.
func staticFiles() http.Handler {
	files := http.FileServerFS(staticFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           Routes(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("[HTTPServer] Request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)))
	})
}
