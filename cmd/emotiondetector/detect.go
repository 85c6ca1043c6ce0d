package main

import (
	"fmt"
	"strings"

	"github.com/spacesedan/emotiondetection/internal/emotion"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Classify text once and print the same sentence the server returns",
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	detector, cleanup, err := buildDetector(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	scores, err := detector.Detect(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("emotion detection failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), emotion.FormatResponse(emotion.Predict(scores)))
	return nil
}
