// Package dataset loads precomputed graph document datasets from disk.
//
// A dataset is described by a dataset.yaml manifest pointing at a JSON
// file containing the graph documents (entities, relationships, and the
// source text chunks they were extracted from).
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/finsight-ai/finrag/graphrag"
)

// ManifestFileName is the default manifest name inside a dataset directory.
const ManifestFileName = "dataset.yaml"

// Manifest describes one importable dataset.
type Manifest struct {
	// Name identifies the dataset in logs.
	Name string `yaml:"name"`

	// Description is free-form documentation.
	Description string `yaml:"description,omitempty"`

	// Documents is the path to the JSON graph documents file, relative to
	// the manifest unless absolute.
	Documents string `yaml:"documents"`
}

// Validate checks required manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if m.Documents == "" {
		return fmt.Errorf("manifest: documents path is required")
	}
	return nil
}

// LoadManifest reads and validates a dataset manifest. If path is a
// directory, dataset.yaml inside it is read.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(manifest.Documents) {
		manifest.Documents = filepath.Join(filepath.Dir(path), manifest.Documents)
	}
	return &manifest, nil
}

// LoadGraphDocuments reads the JSON graph documents a manifest points at
// and validates every document before returning.
func LoadGraphDocuments(manifest *Manifest) ([]*graphrag.GraphDocument, error) {
	data, err := os.ReadFile(manifest.Documents)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file: %w", err)
	}

	var docs []*graphrag.GraphDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents file %s: %w", manifest.Documents, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("documents file %s contains no graph documents", manifest.Documents)
	}

	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	return docs, nil
}
