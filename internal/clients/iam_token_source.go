package clients

import (
	"context"
	"encoding/json"
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

const IAM_APIKEY_GRANT = "urn:ibm:params:oauth:grant-type:apikey"

// IAMTokenSource exchanges an IBM Cloud API key for a bearer token. Wrap it
// in oauth2.ReuseTokenSource so tokens are only fetched when they expire.
type IAMTokenSource struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewIAMTokenSource(client *http.Client, endpoint, apiKey string) *IAMTokenSource {
	return &IAMTokenSource{client: client, endpoint: endpoint, apiKey: apiKey}
}

func (s *IAMTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", IAM_APIKEY_GRANT)
	form.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("[IAMTokenSource] Token request rejected",
			slog.Int("status", resp.StatusCode),
			getPreview(body))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var tr models.IAMTokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	switch {
	case tr.Expiration > 0:
		token.Expiry = time.Unix(tr.Expiration, 0)
	case tr.ExpiresIn > 0:
		token.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	slog.Info("[IAMTokenSource] Fetched IAM token", slog.Time("expiry", token.Expiry))
	return token, nil
}
