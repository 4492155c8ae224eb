package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocuments = `[
  {
    "nodes": [
      {"id": "acme", "type": "Company", "properties": {"name": "Acme Corp"}},
      {"id": "rev-2023", "type": "Metric", "properties": {"name": "FY2023 revenue", "value": 10000000}}
    ],
    "relationships": [
      {"from_id": "acme", "to_id": "rev-2023", "type": "REPORTED"}
    ],
    "source": {"id": "chunk-1", "text": "Acme Corp reported revenue of $10M for fiscal year 2023."}
  }
]`

func writeDataset(t *testing.T, manifest, documents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o600))
	if documents != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "documents.json"), []byte(documents), 0o600))
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	t.Run("from directory", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", validDocuments)

		manifest, err := LoadManifest(dir)
		require.NoError(t, err)
		assert.Equal(t, "fin-reports", manifest.Name)
		assert.Equal(t, filepath.Join(dir, "documents.json"), manifest.Documents)
	})

	t.Run("from file path", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", "")

		manifest, err := LoadManifest(filepath.Join(dir, ManifestFileName))
		require.NoError(t, err)
		assert.Equal(t, "fin-reports", manifest.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		dir := writeDataset(t, "documents: documents.json\n", "")
		_, err := LoadManifest(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("missing documents path", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\n", "")
		_, err := LoadManifest(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "documents path is required")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := writeDataset(t, "name: [unclosed\n", "")
		_, err := LoadManifest(dir)
		assert.Error(t, err)
	})

	t.Run("nonexistent path", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func TestLoadGraphDocuments(t *testing.T) {
	t.Run("valid documents", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", validDocuments)
		manifest, err := LoadManifest(dir)
		require.NoError(t, err)

		docs, err := LoadGraphDocuments(manifest)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Len(t, docs[0].Nodes, 2)
		assert.Len(t, docs[0].Relationships, 1)
		assert.Equal(t, "chunk-1", docs[0].Source.ID)
	})

	t.Run("dangling relationship fails validation", func(t *testing.T) {
		bad := `[
  {
    "nodes": [{"id": "acme", "type": "Company"}],
    "relationships": [{"from_id": "acme", "to_id": "ghost", "type": "REPORTED"}],
    "source": {"id": "chunk-1", "text": "text"}
  }
]`
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", bad)
		manifest, err := LoadManifest(dir)
		require.NoError(t, err)

		_, err = LoadGraphDocuments(manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("empty document list", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", "[]")
		manifest, err := LoadManifest(dir)
		require.NoError(t, err)

		_, err = LoadGraphDocuments(manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no graph documents")
	})

	t.Run("missing documents file", func(t *testing.T) {
		dir := writeDataset(t, "name: fin-reports\ndocuments: documents.json\n", "")
		manifest, err := LoadManifest(dir)
		require.NoError(t, err)

		_, err = LoadGraphDocuments(manifest)
		assert.Error(t, err)
	})
}
