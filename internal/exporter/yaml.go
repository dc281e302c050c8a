package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/lp/internal/model"
	"gopkg.in/yaml.v3"
)

// ExportFileName is the fixed name exported files are offered under.
const ExportFileName = "links-export.yaml"

// DefaultExportPath returns the default export file path: ~/Downloads/links-export.yaml
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads", ExportFileName), nil
}

// exportRecord is the full entity representation of one exported link.
// Field order matches how the records are persisted server-side.
type exportRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
	Logo        string `yaml:"logo,omitempty"`
	Priority    *int   `yaml:"priority,omitempty"`
	CreatedAt   string `yaml:"createdAt,omitempty"`
}

// ExportYAML serializes the given links as a stream of independent YAML
// documents, one record per document. Returns the empty string for an
// empty selection so callers can treat it as a no-op.
func ExportYAML(links []*model.Link) (string, error) {
	if len(links) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, l := range links {
		rec := exportRecord{
			ID:          l.ID,
			Name:        l.Name,
			URL:         l.URL,
			Description: l.Description,
			Logo:        l.Logo,
			Priority:    l.Priority,
		}
		if !l.CreatedAt.IsZero() {
			rec.CreatedAt = l.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}

		data, err := yaml.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("marshal link %s: %w", l.ID, err)
		}
		b.WriteString("---\n")
		b.Write(data)
	}
	return b.String(), nil
}

// WriteExport writes the export document to the given path, creating the
// directory if needed.
func WriteExport(path string, links []*model.Link) error {
	doc, err := ExportYAML(links)
	if err != nil {
		return err
	}
	if doc == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
