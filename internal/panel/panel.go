// Package panel holds the state of the link admin view: the group
// catalog, the loaded link page, the search index, and the selection.
// All mutation goes through Panel methods; the TUI and subcommands only
// read through accessors. Consistency with the server is approximated by
// refetching after every write instead of transactional guarantees.
package panel

import (
	"context"
	"io"
	"log"

	"github.com/nikbrunner/lp/internal/client"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/search"
)

// Resource is the subset of the resource API the panel drives.
// *client.Client satisfies it; tests substitute a fake.
type Resource interface {
	ListLinks(ctx context.Context, opts client.ListOptions) (*client.LinkPage, error)
	CreateLink(ctx context.Context, link model.Link) error
	ReplaceLink(ctx context.Context, link model.Link) error
	DeleteLink(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]model.LinkGroup, error)
	ReplaceGroup(ctx context.Context, group model.LinkGroup) error
}

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Panel owns the admin view state.
type Panel struct {
	resource Resource
	logger   *log.Logger

	// Group catalog
	groups   []model.LinkGroup
	selected int // index into groups, -1 = none

	// Link page
	page     []*model.Link
	total    int
	pageNum  int
	pageSize int
	loading  bool

	// Search, scoped to the loaded page
	index   *search.Index
	keyword string

	// Selection, scoped to the loaded page
	checked     map[string]bool
	allSelected bool

	// Sequential navigator
	activeID string
}

// Params holds parameters for creating a Panel.
type Params struct {
	Resource Resource
	PageSize int         // optional, defaults to DefaultPageSize
	Logger   *log.Logger // optional, defaults to discarding diagnostics
}

// New creates a Panel with an empty catalog and page.
func New(params Params) *Panel {
	size := params.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	logger := params.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Panel{
		resource: params.Resource,
		logger:   logger,
		selected: -1,
		pageNum:  1,
		pageSize: size,
		index:    search.NewIndex(nil),
		checked:  map[string]bool{},
	}
}

// Groups returns the catalog ordered ascending by priority.
func (p *Panel) Groups() []model.LinkGroup { return p.groups }

// SelectedGroup returns the active group, or nil if none is selected.
func (p *Panel) SelectedGroup() *model.LinkGroup {
	if p.selected < 0 || p.selected >= len(p.groups) {
		return nil
	}
	return &p.groups[p.selected]
}

// SelectedIndex returns the index of the active group, -1 for none.
func (p *Panel) SelectedIndex() int { return p.selected }

// Page returns the full loaded page, sorted ascending by priority.
func (p *Panel) Page() []*model.Link { return p.page }

// Total returns the server-side total for the current membership filter.
func (p *Panel) Total() int { return p.total }

// PageNum returns the current 1-based page number.
func (p *Panel) PageNum() int { return p.pageNum }

// PageSize returns the current page size.
func (p *Panel) PageSize() int { return p.pageSize }

// Loading reports whether an unmuted fetch is in flight.
func (p *Panel) Loading() bool { return p.loading }

// Keyword returns the active search keyword, empty for none.
func (p *Panel) Keyword() string { return p.keyword }

// SetKeyword updates the search keyword. The index itself is only rebuilt
// when the page is replaced.
func (p *Panel) SetKeyword(keyword string) { p.keyword = keyword }

// View returns the currently displayed sequence: the full page when no
// keyword is active, the ranked search subset otherwise. Entries are the
// page's own pointers, so a reorder over the subset writes through to the
// backing page.
func (p *Panel) View() []*model.Link {
	return search.Links(p.index.Search(p.keyword))
}

// Matches returns the displayed sequence with match metadata, for
// renderers that highlight matched characters.
func (p *Panel) Matches() []search.Result {
	return p.index.Search(p.keyword)
}
