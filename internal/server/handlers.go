package server

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spacesedan/emotiondetection/internal/emotion"
	"github.com/spacesedan/emotiondetection/internal/models"
)

const (
	QUERY_TEXT      = "textToAnalyze"
	PAGE_TITLE      = "Emotion Detection"
	PUBLISH_TIMEOUT = 10 * time.Second
)

// ResultPublisher receives every valid detection. Publishing happens after
// the response is written and its failures are only logged.
type ResultPublisher interface {
	PublishEmotionEvent(ctx context.Context, key string, event models.EmotionEvent) error
}

type Handler struct {
	detector  emotion.Detector
	backend   string
	publisher ResultPublisher
	healthy   *atomic.Bool
	index     *template.Template
	pending   sync.WaitGroup
}

func NewHandler(detector emotion.Detector, backend string) *Handler {
	return &Handler{
		detector: detector,
		backend:  backend,
		index:    template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

func (h *Handler) WithPublisher(publisher ResultPublisher) *Handler {
	h.publisher = publisher
	return h
}

func (h *Handler) WithHealthCheck(healthy *atomic.Bool) *Handler {
	h.healthy = healthy
	return h
}

// EmotionDetector answers GET /emotionDetector?textToAnalyze=...
func (h *Handler) EmotionDetector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	text := r.URL.Query().Get(QUERY_TEXT)

	scores, err := h.detector.Detect(r.Context(), text)
	if err != nil {
		slog.Error("[EmotionHandler] Classifier request failed",
			slog.String("backend", h.backend),
			slog.Int("text_length", len(text)),
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	result := emotion.Predict(scores)
	writeText(w, emotion.FormatResponse(result))

	dominant := "none"
	if result.Valid() {
		dominant = *result.DominantEmotion
		h.publish(text, result)
	}
	slog.Info("[EmotionHandler] Detection complete",
		slog.Int("text_length", len(text)),
		slog.String("dominant_emotion", dominant),
		slog.Duration("elapsed", time.Since(start)))
}

// Index renders the landing page for GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, struct{ Title string }{PAGE_TITLE}); err != nil {
		slog.Error("[IndexHandler] Failed to render index page",
			slog.String("error", err.Error()))
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.healthy != nil && !h.healthy.Load() {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("classifier unavailable"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// Wait blocks until in-flight result publishes finish.
func (h *Handler) Wait() {
	h.pending.Wait()
}

func (h *Handler) publish(text string, result models.FormattedResult) {
	if h.publisher == nil {
		return
	}

	event := models.EmotionEvent{
		Text:       text,
		Backend:    h.backend,
		Result:     result,
		DetectedAt: time.Now().UTC(),
	}
	key := emotion.CacheKey(h.backend, text)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), PUBLISH_TIMEOUT)
		defer cancel()

		if err := h.publisher.PublishEmotionEvent(ctx, key, event); err != nil {
			slog.Warn("[EmotionHandler] Failed to publish result",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}()
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
