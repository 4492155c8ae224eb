package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with env key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 5, cfg.Pipeline.TopK)
		assert.Equal(t, 60*time.Second, cfg.Pipeline.GenerationTimeout)
	})

	t.Run("file values with env override", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("NEO4J_PASSWORD", "from-env")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
neo4j:
  uri: bolt://graph:7687
  password: from-file
server:
  addr: ":9090"
pipeline:
  top_k: 10
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
		assert.Equal(t, "from-env", cfg.Neo4j.Password)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 10, cfg.Pipeline.TopK)
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai.api_key")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid min score", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("PIPELINE_MIN_SCORE", "1.5")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_score")
	})
}
