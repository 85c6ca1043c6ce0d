package config

import (
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BACKEND_WATSON = "watson"
	BACKEND_HUGOT  = "hugot"

	DEFAULT_WATSON_URL      = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DEFAULT_WATSON_MODEL_ID = "emotion_aggregated-workflow_lang_en_stock"
	DEFAULT_IAM_URL         = "https://iam.cloud.ibm.com/identity/token"
	DEFAULT_HUGOT_MODEL     = "j-hartmann/emotion-english-distilroberta-base"
)

type Config struct {
	Env      string
	Host     string
	Port     string
	LogLevel slog.Level

	Backend           string
	WatsonURL         string
	WatsonModelID     string
	WatsonAPIKey      string
	WatsonIAMURL      string
	ClassifierTimeout time.Duration

	HugotModel    string
	HugotModelDir string

	NormalizeMarkdown bool

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration

	KafkaBroker string
	KafkaTopic  string

	HealthcheckInterval time.Duration
}

// Load reads the process environment. Call LoadEnv first so env-file values
// are visible.
func Load() Config {
	env := getEnv("APP_ENV", "dev")

	defaultTimeout := 60 * time.Second
	if env == "production" {
		defaultTimeout = 10 * time.Second
	}

	return Config{
		Env:      env,
		Host:     getEnv("HOST", "0.0.0.0"),
		Port:     getEnv("PORT", "5000"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		Backend:           strings.ToLower(getEnv("CLASSIFIER_BACKEND", BACKEND_WATSON)),
		WatsonURL:         getEnv("WATSON_URL", DEFAULT_WATSON_URL),
		WatsonModelID:     getEnv("WATSON_MODEL_ID", DEFAULT_WATSON_MODEL_ID),
		WatsonAPIKey:      getEnv("WATSON_API_KEY", ""),
		WatsonIAMURL:      getEnv("WATSON_IAM_URL", DEFAULT_IAM_URL),
		ClassifierTimeout: getEnvDuration("CLASSIFIER_TIMEOUT", defaultTimeout),

		HugotModel:    getEnv("HUGOT_MODEL", DEFAULT_HUGOT_MODEL),
		HugotModelDir: getEnv("HUGOT_MODEL_DIR", "./models"),

		NormalizeMarkdown: getEnvBool("NORMALIZE_MARKDOWN", false),

		ValkeyAddress:  getEnv("VALKEY_INIT_ADDRESS", ""),
		ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:      getEnvBool("VALKEY_TLS", false),
		CacheTTL:       getEnvDuration("CACHE_TTL", 24*time.Hour),

		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		KafkaTopic:  getEnv("KAFKA_EMOTION_TOPIC", "emotion-results"),

		HealthcheckInterval: getEnvDuration("HEALTHCHECK_INTERVAL", 15*time.Second),
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("[Config] Invalid boolean, using default",
			slog.String("key", key),
			slog.String("value", value))
		return defaultValue
	}
	return parsed
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
// Zero and negative values fall back to the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("[Config] Invalid duration, using default",
		slog.String("key", key),
		slog.String("value", value))
	return defaultValue
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
