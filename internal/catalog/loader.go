package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/harrison/wcagcheck/internal/models"
)

//go:embed data/wcag22.yaml
var defaultCatalogYAML []byte

// catalogFile is the on-disk layout of a catalog file
type catalogFile struct {
	FallbackLanguage string             `yaml:"fallback_language"`
	Criteria         []models.Criterion `yaml:"criteria"`
	Questions        []models.Question  `yaml:"questions"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded WCAG 2.2 A/AA catalog. The result is shared
// and must not be modified; Catalog exposes no mutators.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(bytes.NewReader(defaultCatalogYAML))
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded catalog: %w", defaultErr)
		}
	})
	return defaultCatalog, defaultErr
}

// Parse reads a YAML catalog. JSON input is accepted as well since it is a
// subset of YAML.
func Parse(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return New(file.Criteria, file.Questions, file.FallbackLanguage)
}

// Load reads a catalog file from disk
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads path, or returns the embedded catalog when path is empty
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Marshal encodes a catalog in the file layout accepted by Parse
func Marshal(c *Catalog) ([]byte, error) {
	file := catalogFile{
		FallbackLanguage: c.fallback,
		Criteria:         c.criteria,
		Questions:        c.questions,
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return data, nil
}
