package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikbrunner/lp/internal/client"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/search"
)

// FetchOptions controls a link page fetch.
type FetchOptions struct {
	// Mute suppresses the loading flag so background reconciliation does
	// not flicker the view.
	Mute bool
}

// FetchLinks loads the active group's page: membership filter from the
// group's Links sequence, server-side pagination, then a stable sort
// ascending by resolved priority regardless of server ordering. A group
// without members clears the page without a request.
//
// On failure the error is logged, the loading flag is cleared, and no
// partial page is retained; the previous page stays in place until a
// later fetch succeeds.
func (p *Panel) FetchLinks(ctx context.Context, opts FetchOptions) error {
	group := p.SelectedGroup()
	if group == nil || len(group.Links) == 0 {
		p.replacePage(nil, 0)
		return nil
	}

	if !opts.Mute {
		p.loading = true
	}

	result, err := p.resource.ListLinks(ctx, client.ListOptions{
		Page:   p.pageNum,
		Size:   p.pageSize,
		Filter: client.MembershipFilter(group.Links),
	})
	p.loading = false
	if err != nil {
		p.logger.Printf("fetch links for group %s: %v", group.ID, err)
		return fmt.Errorf("fetch links: %w", err)
	}

	page := make([]*model.Link, 0, len(result.Items))
	for i := range result.Items {
		page = append(page, &result.Items[i])
	}
	model.SortByPriority(page)

	p.replacePage(page, result.Total)
	return nil
}

// ChangePage updates paging parameters and refetches. Selection and
// search are scoped to the loaded page and do not survive the boundary.
func (p *Panel) ChangePage(ctx context.Context, page, size int) error {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = p.pageSize
	}
	p.pageNum = page
	p.pageSize = size
	p.resetPageScope()
	return p.FetchLinks(ctx, FetchOptions{})
}

// Reorder persists the displayed sequence as the new canonical order:
// every link's priority becomes its zero-based position, mutated in
// place, then one replace request per item is issued concurrently. After
// all requests settle, win or lose, a muted refetch reconciles the page
// with whatever the server now holds.
//
// When a search keyword is active the sequence is the filtered subset
// and only its members are renumbered; hidden links keep their stale
// priorities. That matches the source behavior of the panel and is
// documented rather than corrected.
func (p *Panel) Reorder(ctx context.Context, seq []*model.Link) error {
	for i, link := range seq {
		priority := i
		link.Priority = &priority
	}

	errs := make([]error, len(seq))
	var wg sync.WaitGroup
	for i, link := range seq {
		wg.Add(1)
		go func(i int, link model.Link) {
			defer wg.Done()
			errs[i] = p.resource.ReplaceLink(ctx, link)
		}(i, *link)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			p.logger.Printf("reorder write failed: %v", err)
		}
	}

	if err := p.FetchLinks(ctx, FetchOptions{Mute: true}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// replacePage swaps in a new page and rebuilds everything scoped to it.
func (p *Panel) replacePage(page []*model.Link, total int) {
	p.page = page
	p.total = total
	p.index = search.NewIndex(page)
	p.pruneSelection()
}

// resetPageScope drops page-scoped search and selection state.
func (p *Panel) resetPageScope() {
	p.keyword = ""
	p.checked = map[string]bool{}
	p.allSelected = false
	p.activeID = ""
}
