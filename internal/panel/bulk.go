package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/nikbrunner/lp/internal/exporter"
	"github.com/nikbrunner/lp/internal/importer"
	"github.com/nikbrunner/lp/internal/model"
)

// DeleteChecked issues one delete request per selected link concurrently
// and, once all of them have settled, refetches the page regardless of
// individual failures. Failed deletes surface only through the refetch
// still showing the item; there is no retry or compensation.
func (p *Panel) DeleteChecked(ctx context.Context) error {
	links := p.CheckedLinks()
	if len(links) == 0 {
		return nil
	}

	errs := make([]error, len(links))
	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = p.resource.DeleteLink(ctx, id)
		}(i, link.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			p.logger.Printf("batch delete failed: %v", err)
		}
	}

	if err := p.FetchLinks(ctx, FetchOptions{Mute: true}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ExportChecked writes the selected links to path as a YAML document
// stream. A page with zero items is a no-op.
func (p *Panel) ExportChecked(path string) error {
	if len(p.page) == 0 {
		return nil
	}
	if err := exporter.WriteExport(path, p.CheckedLinks()); err != nil {
		return fmt.Errorf("export selection: %w", err)
	}
	return nil
}

// Import parses a YAML document (single record or sequence) from r,
// issues one create request per record concurrently, and refetches the
// page afterwards. Successfully created records survive partial failure;
// nothing is rolled back.
func (p *Panel) Import(ctx context.Context, r io.Reader) (int, error) {
	links, err := importer.ParseLinks(r)
	if err != nil {
		p.logger.Printf("import parse failed: %v", err)
		return 0, err
	}
	if len(links) == 0 {
		return 0, nil
	}

	errs := make([]error, len(links))
	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link model.Link) {
			defer wg.Done()
			errs[i] = p.resource.CreateLink(ctx, link)
		}(i, link)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err != nil {
			p.logger.Printf("import create failed: %v", err)
		} else {
			created++
		}
	}

	if err := p.FetchLinks(ctx, FetchOptions{Mute: true}); err != nil {
		errs = append(errs, err)
	}
	return created, errors.Join(errs...)
}

// CreateAndAssign creates a new link and appends it to the active
// group's membership, then reloads groups and the page. This is the
// creation workflow's commit step.
func (p *Panel) CreateAndAssign(ctx context.Context, link model.Link) error {
	if p.SelectedGroup() == nil {
		return errors.New("create link: no group selected")
	}
	if err := p.resource.CreateLink(ctx, link); err != nil {
		return fmt.Errorf("create link %s: %w", link.ID, err)
	}
	return p.AssignToSelected(ctx, link.ID)
}
