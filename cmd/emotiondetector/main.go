package main

import (
	"os"

	"github.com/spacesedan/emotiondetection/config"
	"github.com/spacesedan/emotiondetection/internal/logging"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "emotiondetector",
	Short: "Emotion detection web service",
	Long: `emotiondetector forwards text to an emotion classifier and reports the
anger, disgust, fear, joy and sadness scores along with the dominant emotion.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		config.LoadEnv(env)
		cfg = config.Load()
		logging.InitLogger(cfg.LogLevel)
	},
	RunE: runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(detectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
