package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"rules-bot/internal/core/domain"

	"github.com/joho/godotenv"
)

const (
	defaultChatModel      = "gpt-4o-mini"
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultTemperature    = 0.2
	defaultMaxTokens      = 500
	defaultTimeout        = 60 * time.Second
	defaultTopK           = 0
	defaultRulesPath      = "rules.txt"
)

type Config struct {
	Token          string
	ApplicationID  string
	GuildIDs       []string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	MaxTokens      int
	Timeout        time.Duration
	RetrievalTopK  int
	RulesPath      string
	MetricsAddr    string
	LogLevel       slog.Level
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := secretOrEnv("discord_token", "DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("%w: DISCORD_TOKEN is not set (via secret or env var)", domain.ErrConfiguration)
	}

	cfg := &Config{
		Token:          token,
		ApplicationID:  envString("DISCORD_APPLICATION_ID", ""),
		GuildIDs:       envList("DISCORD_GUILD_IDS"),
		OpenAIAPIKey:   secretOrEnv("openai_api_key", "OPENAI_API_KEY"),
		OpenAIBaseURL:  envString("OPENAI_BASE_URL", ""),
		ChatModel:      envString("OPENAI_MODEL", defaultChatModel),
		EmbeddingModel: envString("OPENAI_EMBEDDING_MODEL", defaultEmbeddingModel),
		Temperature:    envFloat32("OPENAI_TEMPERATURE", defaultTemperature),
		MaxTokens:      envInt("OPENAI_MAX_TOKENS", defaultMaxTokens),
		Timeout:        envDuration("OPENAI_TIMEOUT", defaultTimeout),
		RetrievalTopK:  envInt("RULES_TOP_K", defaultTopK),
		RulesPath:      envString("RULES_PATH", defaultRulesPath),
		MetricsAddr:    envString("METRICS_ADDR", ":2112"),
		LogLevel:       envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	// Only a missing token stops the bot; anything else degrades.
	if err := cfg.Validate(); err != nil {
		slog.Warn("Invalid configuration values, falling back to defaults", "error", err)
		cfg.applyDefaults()
	}

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, rules answers will fail")
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func secretOrEnv(secret, key string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(key)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat32(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}

// envList splits a comma separated value, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
