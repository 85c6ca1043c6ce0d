package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/emotiondetection/internal/models"
	"github.com/valkey-io/valkey-go"
)

const RETRY_DELAY = 250 * time.Millisecond

type ValkeyConfig struct {
	Address  string
	Password string
	TLS      bool
}

// ValkeyClient stores classifier scores as JSON strings with a TTL.
type ValkeyClient struct {
	Client valkey.Client
	opts   valkey.ClientOption
	mu     sync.Mutex
}

func NewValkeyClient(ctx context.Context, cfg ValkeyConfig) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.Address,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := connectValkey(ctx, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", cfg.Address))

	return &ValkeyClient{Client: client, opts: opts}, nil
}

func connectValkey(ctx context.Context, opts valkey.ClientOption) (valkey.Client, error) {
	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) recreateClient(ctx context.Context) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(ctx, vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}

	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

func (vc *ValkeyClient) GetScores(ctx context.Context, key string) (models.EmotionScores, bool, error) {
	c := vc.client()
	res := vc.DoWithRetry(ctx, c.B().Get().Key(key).Build(), 3)

	raw, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		if isConnectionError(err) {
			vc.recreateClient(ctx)
		}
		return nil, false, err
	}

	var scores models.EmotionScores
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, false, fmt.Errorf("[ValkeyClient] corrupt cache entry %s: %w", key, err)
	}
	return scores, true, nil
}

func (vc *ValkeyClient) SetScores(ctx context.Context, key string, scores models.EmotionScores, ttl time.Duration) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("[ValkeyClient] failed to marshal scores: %w", err)
	}

	seconds := int64(ttl.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	c := vc.client()
	res := vc.DoWithRetry(ctx, c.B().Set().Key(key).Value(string(payload)).ExSeconds(seconds).Build(), 3)
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient(ctx)
		}
		return err
	}

	slog.Debug("[ValkeyClient] Stored scores",
		slog.String("key", key),
		slog.Duration("ttl", ttl))
	return nil
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	c := vc.client()
	for i := 0; i < retries; i++ {
		result = c.Do(ctx, completed)
		err := result.Error()
		// server replies such as WRONGTYPE will not change on retry
		if err == nil || valkey.IsValkeyNil(err) || !isConnectionError(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if i == retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return result
		case <-time.After(RETRY_DELAY):
		}
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
