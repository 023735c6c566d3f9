// Package config loads application configuration from a YAML file with
// environment variable overrides for secrets. Secrets never live in the
// config file; they come from the environment, optionally seeded from a
// .env file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/ragmesh/scoring"
)

// RetrievalConfig tunes the candidate filter.
type RetrievalConfig struct {
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"`
}

// MemoryConfig selects and configures the conversation memory backend.
type MemoryConfig struct {
	// Type is "memory" or "redis".
	Type    string       `yaml:"type"`
	TTLSecs int          `yaml:"ttl_secs"`
	Redis   *RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig contains connection details for the Redis memory backend.
// The password comes from REDIS_PASSWORD, not from this file.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// QdrantConfig contains connection details for the Qdrant vector store.
// The API key comes from QDRANT_API_KEY, not from this file.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	Collection string `yaml:"collection"`
}

// OpenAIConfig selects the OpenAI models. The API key comes from
// OPENAI_API_KEY, read by the SDK itself.
type OpenAIConfig struct {
	ChatModel      string  `yaml:"chat_model"`
	EmbeddingModel string  `yaml:"embedding_model"`
	Temperature    float64 `yaml:"temperature"`
}

// LoggingConfig tunes structured logging output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Scoring   scoring.Config  `yaml:"scoring"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Memory    MemoryConfig    `yaml:"memory"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Logging   LoggingConfig   `yaml:"logging"`
	// LogsDir is where interaction logs are written.
	LogsDir string `yaml:"logs_dir"`
}

// Secrets holds values read from the environment.
type Secrets struct {
	QdrantAPIKey  string
	RedisPassword string
}

// Load reads a config from the given path. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSecrets seeds the environment from .env when present, then reads the
// secret values. A missing .env file is not an error.
func LoadSecrets() Secrets {
	_ = godotenv.Load()
	return Secrets{
		QdrantAPIKey:  os.Getenv("QDRANT_API_KEY"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Scoring.Policy == "" {
		cfg.Scoring = scoring.DefaultConfig()
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.Threshold == 0 {
		cfg.Retrieval.Threshold = 0.5
	}
	if cfg.Memory.Type == "" {
		cfg.Memory.Type = "memory"
	}
	if cfg.Memory.TTLSecs == 0 {
		cfg.Memory.TTLSecs = 3600
	}
	if cfg.Memory.Type == "redis" && cfg.Memory.Redis == nil {
		cfg.Memory.Redis = &RedisConfig{Addr: "localhost:6379"}
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "splitter"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = 0.3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = "logs"
	}
}
