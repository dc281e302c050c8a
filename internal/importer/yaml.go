package importer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nikbrunner/lp/internal/model"
	"gopkg.in/yaml.v3"
)

// importRecord mirrors the exported entity representation.
type importRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Logo        string `yaml:"logo"`
	Priority    *int   `yaml:"priority"`
	CreatedAt   string `yaml:"createdAt"`
}

// ParseLinks parses an uploaded YAML document into links to create.
// Accepted shapes: a single record, a sequence of records, or a stream of
// documents each holding either shape. Records without an ID get one
// generated so the create request can address them.
func ParseLinks(r io.Reader) ([]model.Link, error) {
	dec := yaml.NewDecoder(r)

	var links []model.Link
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse import document: %w", err)
		}

		root := &node
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}

		switch root.Kind {
		case yaml.SequenceNode:
			var records []importRecord
			if err := root.Decode(&records); err != nil {
				return nil, fmt.Errorf("parse import sequence: %w", err)
			}
			for _, rec := range records {
				links = append(links, toLink(rec))
			}
		default:
			var rec importRecord
			if err := root.Decode(&rec); err != nil {
				return nil, fmt.Errorf("parse import record: %w", err)
			}
			links = append(links, toLink(rec))
		}
	}

	return links, nil
}

// toLink converts a parsed record to a model link.
func toLink(rec importRecord) model.Link {
	link := model.Link{
		ID:          rec.ID,
		Name:        rec.Name,
		URL:         rec.URL,
		Description: rec.Description,
		Logo:        rec.Logo,
		Priority:    rec.Priority,
		CreatedAt:   time.Now(),
	}
	if link.ID == "" {
		link.ID = model.GenerateUUID()
	}
	if rec.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			link.CreatedAt = t
		}
	}
	return link
}
