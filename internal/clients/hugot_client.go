package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/emotiondetection/internal/models"
)

// HugotClassifier runs a Hugging Face emotion model locally through
// onnxruntime. The model must expose at least the five emotion labels.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

func NewHugotClassifier(modelName, modelDir string) (*HugotClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotClassifier] Model not found, downloading...",
			slog.String("model", modelName))
		modelPath, err = hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download model %s: %w", modelName, err)
		}
		slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "emotionClassificationPipeline",
	}
	config.Options = append(config.Options, pipelines.WithMultiLabel())

	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize emotion pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

func (h *HugotClassifier) Detect(ctx context.Context, text string) (models.EmotionScores, error) {
	if strings.TrimSpace(text) == "" {
		return models.EmotionScores{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("emotion pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return models.EmotionScores{}, nil
	}

	return scoresFromClassification(output.ClassificationOutputs[0]), nil
}

func (h *HugotClassifier) HealthCheck(ctx context.Context) bool {
	return h != nil && h.pipeline != nil
}

func (h *HugotClassifier) Close() {
	if h.session != nil {
		h.session.Destroy()
	}
}

// scoresFromClassification keeps the five known labels and drops extras
// such as "neutral" or "surprise".
func scoresFromClassification(outputs []pipelines.ClassificationOutput) models.EmotionScores {
	scores := models.EmotionScores{}
	for _, out := range outputs {
		label := strings.ToLower(strings.TrimSpace(out.Label))
		for _, known := range models.EmotionLabels {
			if label == known {
				scores[label] = float64(out.Score)
				break
			}
		}
	}
	return scores
}
