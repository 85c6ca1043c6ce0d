package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacesedan/emotiondetection/internal/models"
	"golang.org/x/oauth2"
)

const WATSON_MODEL_HEADER = "grpc-metadata-mm-model-id"

var ErrUnexpectedStatus = errors.New("unexpected status from classifier")

type WatsonConfig struct {
	URL     string
	ModelID string
	Timeout time.Duration

	// APIKey switches on IBM IAM bearer auth; IAMURL is the token endpoint.
	APIKey string
	IAMURL string
}

// WatsonClient talks to the Watson NLP EmotionPredict REST endpoint.
type WatsonClient struct {
	Client     *http.Client
	endpoint   string
	modelID    string
	maxRetries int
	backoff    time.Duration
}

func NewWatsonClient(cfg WatsonConfig) *WatsonClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	if cfg.APIKey != "" {
		base := &http.Client{Timeout: cfg.Timeout}
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, NewIAMTokenSource(base, cfg.IAMURL, cfg.APIKey)),
			Base:   http.DefaultTransport,
		}
	}

	slog.Info("[WatsonClient] Initializing Client",
		slog.String("endpoint", cfg.URL),
		slog.String("model_id", cfg.ModelID),
		slog.Duration("timeout", cfg.Timeout),
		slog.Bool("iam_auth", cfg.APIKey != ""))

	return &WatsonClient{
		Client:     httpClient,
		endpoint:   cfg.URL,
		modelID:    cfg.ModelID,
		maxRetries: MAX_RETRIES,
		backoff:    INITIAL_BACKOFF,
	}
}

// WithRetryPolicy overrides the retry attempts and the initial backoff.
func (w *WatsonClient) WithRetryPolicy(maxRetries int, initialBackoff time.Duration) *WatsonClient {
	if maxRetries < 1 {
		maxRetries = 1
	}
	w.maxRetries = maxRetries
	w.backoff = initialBackoff
	return w
}

// Detect returns the five emotion scores for text. A 400 from Watson means
// the text was blank or unusable and yields empty scores with no error.
func (w *WatsonClient) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	start := time.Now()

	body, err := json.Marshal(models.WatsonEmotionRequest{
		RawDocument: models.WatsonRawDocument{Text: text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set(WATSON_MODEL_HEADER, w.modelID)

	resp, err := w.DoWithRetry(req)
	if err != nil {
		slog.Error("[WatsonClient] Failed request after retries",
			slog.String("endpoint", w.endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		slog.Info("[WatsonClient] Classifier rejected text",
			slog.Int("text_length", len(text)),
			slog.Duration("elapsed", time.Since(start)))
		return models.EmotionScores{}, nil
	case resp.StatusCode != http.StatusOK:
		slog.Error("[WatsonClient] Unexpected status",
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var out models.WatsonEmotionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		slog.Error("[WatsonClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	scores := models.EmotionScores{}
	if len(out.EmotionPredictions) > 0 {
		for _, label := range models.EmotionLabels {
			if v, ok := out.EmotionPredictions[0].Emotion[label]; ok {
				scores[label] = v
			}
		}
	}

	slog.Debug("[WatsonClient] Emotion request successful",
		slog.Duration("elapsed", time.Since(start)))

	return scores, nil
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. Request bodies are rewound through GetBody between attempts.
func (w *WatsonClient) DoWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := w.backoff

	for attempt := 0; attempt < w.maxRetries; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
			}
			req.Body = body
		}

		resp, err = w.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if attempt == w.maxRetries-1 {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[WatsonClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// HealthCheck treats any answer below 500 from the endpoint's host as alive.
func (w *WatsonClient) HealthCheck(ctx context.Context) bool {
	target, err := url.Parse(w.endpoint)
	if err != nil {
		return false
	}
	target.Path = "/"
	target.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := w.Client.Do(req)
	if err != nil {
		slog.Debug("[WatsonClient] Health check failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < 500
}

func getPreview(respBody []byte) slog.Attr {
	raw := strings.TrimSpace(string(respBody))
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
