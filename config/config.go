// Package config loads the process configuration from a YAML file and
// environment variables. Environment variables win, so deployments can
// keep secrets like NEO4J_PASSWORD and OPENAI_API_KEY out of the file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full process configuration.
type Config struct {
	Neo4j struct {
		URI      string `mapstructure:"uri"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		Database string `mapstructure:"database"`
	} `mapstructure:"neo4j"`

	OpenAI struct {
		APIKey         string `mapstructure:"api_key"`
		ChatModel      string `mapstructure:"chat_model"`
		EmbeddingModel string `mapstructure:"embedding_model"`
		BaseURL        string `mapstructure:"base_url"`
	} `mapstructure:"openai"`

	Redis struct {
		// Addr enables the Redis answer cache when non-empty.
		Addr string        `mapstructure:"addr"`
		TTL  time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Server struct {
		Addr           string   `mapstructure:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`

	Pipeline struct {
		TopK              int           `mapstructure:"top_k"`
		MinScore          float64       `mapstructure:"min_score"`
		Temperature       float64       `mapstructure:"temperature"`
		MaxTokens         int           `mapstructure:"max_tokens"`
		HistoryLimit      int           `mapstructure:"history_limit"`
		GenerationTimeout time.Duration `mapstructure:"generation_timeout"`
	} `mapstructure:"pipeline"`
}

// Load reads configuration from the given file path (optional) and the
// environment. Environment variables use underscores for nesting, e.g.
// NEO4J_URI, OPENAI_API_KEY, SERVER_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key with viper. AutomaticEnv only feeds
// Unmarshal for keys viper already knows about, so even secrets that have
// no sensible default get an empty one here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "neo4j")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", time.Hour)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("pipeline.top_k", 5)
	v.SetDefault("pipeline.min_score", 0.0)
	v.SetDefault("pipeline.temperature", 0.2)
	v.SetDefault("pipeline.max_tokens", 0)
	v.SetDefault("pipeline.history_limit", 6)
	v.SetDefault("pipeline.generation_timeout", 60*time.Second)
}

// Validate checks the fields every subsystem depends on. The OpenAI key is
// required because both answering and embedding go through the API.
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return errors.New("neo4j.uri is required")
	}
	if c.OpenAI.APIKey == "" {
		return errors.New("openai.api_key is required (set OPENAI_API_KEY)")
	}
	if c.Pipeline.TopK <= 0 {
		return fmt.Errorf("pipeline.top_k must be positive, got %d", c.Pipeline.TopK)
	}
	if c.Pipeline.MinScore < 0 || c.Pipeline.MinScore > 1 {
		return fmt.Errorf("pipeline.min_score must be between 0 and 1, got %f", c.Pipeline.MinScore)
	}
	return nil
}
