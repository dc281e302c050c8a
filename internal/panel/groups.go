package panel

import (
	"context"
	"fmt"

	"github.com/nikbrunner/lp/internal/model"
)

// LoadGroups fetches all groups, orders them ascending by priority, and
// keeps the current selection when its group still exists. With no prior
// selection the first group becomes active. The link page is refetched
// for the resulting selection.
func (p *Panel) LoadGroups(ctx context.Context) error {
	groups, err := p.resource.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	model.SortGroupsByPriority(groups)

	var keepID string
	if g := p.SelectedGroup(); g != nil {
		keepID = g.ID
	}

	p.groups = groups
	p.selected = -1
	for i, g := range groups {
		if g.ID == keepID {
			p.selected = i
			break
		}
	}
	if p.selected < 0 && len(groups) > 0 {
		p.selected = 0
	}

	return p.FetchLinks(ctx, FetchOptions{})
}

// Select makes the group at index i active and refetches its link page
// from the first page.
func (p *Panel) Select(ctx context.Context, i int) error {
	if i < 0 || i >= len(p.groups) {
		return fmt.Errorf("select group: index %d out of range", i)
	}
	p.selected = i
	p.pageNum = 1
	p.resetPageScope()
	return p.FetchLinks(ctx, FetchOptions{})
}

// AssignToSelected appends a newly created link's ID to the active
// group's membership and persists the group as a full replacement write,
// then refetches groups and the link page.
func (p *Panel) AssignToSelected(ctx context.Context, linkID string) error {
	group := p.SelectedGroup()
	if group == nil {
		return fmt.Errorf("assign link %s: no group selected", linkID)
	}

	updated := group.Clone()
	updated.Links = append(updated.Links, linkID)

	if err := p.resource.ReplaceGroup(ctx, updated); err != nil {
		return fmt.Errorf("assign link %s to group %s: %w", linkID, group.ID, err)
	}

	return p.LoadGroups(ctx)
}
