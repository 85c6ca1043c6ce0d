package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/emotiondetection/config"
	"github.com/spacesedan/emotiondetection/internal/clients"
	"github.com/spacesedan/emotiondetection/internal/clients/kafka_client"
	"github.com/spacesedan/emotiondetection/internal/emotion"
)

// buildDetector assembles the classifier chain:
// cache -> markdown normalization -> backend.
func buildDetector(ctx context.Context, cfg config.Config) (emotion.Detector, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var detector emotion.Detector
	switch cfg.Backend {
	case config.BACKEND_WATSON:
		detector = clients.NewWatsonClient(clients.WatsonConfig{
			URL:     cfg.WatsonURL,
			ModelID: cfg.WatsonModelID,
			Timeout: cfg.ClassifierTimeout,
			APIKey:  cfg.WatsonAPIKey,
			IAMURL:  cfg.WatsonIAMURL,
		})
	case config.BACKEND_HUGOT:
		hugotClassifier, err := clients.NewHugotClassifier(cfg.HugotModel, cfg.HugotModelDir)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, hugotClassifier.Close)
		detector = hugotClassifier
	default:
		return nil, cleanup, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}

	if cfg.NormalizeMarkdown {
		detector = emotion.NewNormalizingDetector(detector)
	}

	if cfg.ValkeyAddress != "" {
		valkeyClient, err := clients.NewValkeyClient(ctx, clients.ValkeyConfig{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			TLS:      cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Result cache disabled",
				slog.String("error", err.Error()))
		} else {
			closers = append(closers, valkeyClient.Close)
			namespace := emotion.CacheNamespace(cfg.Backend, cfg.NormalizeMarkdown)
			detector = emotion.NewCachedDetector(detector, valkeyClient, namespace, cfg.CacheTTL)
		}
	}

	slog.Info("[Main] Classifier ready",
		slog.String("backend", cfg.Backend),
		slog.Bool("normalize_markdown", cfg.NormalizeMarkdown),
		slog.Bool("cache", cfg.ValkeyAddress != ""))

	return detector, cleanup, nil
}

// buildPublisher returns nil when no broker is configured or it is unreachable.
func buildPublisher(ctx context.Context, cfg config.Config) *kafka_client.Producer {
	if cfg.KafkaBroker == "" {
		return nil
	}

	producer, err := kafka_client.NewProducer(ctx, kafka_client.NewKafkaConfig(cfg.KafkaBroker, cfg.KafkaTopic))
	if err != nil {
		slog.Warn("[Main] Result events disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return producer
}
