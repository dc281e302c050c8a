package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lp/internal/client"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/panel"
)

// fakeResource is an in-memory resource API for driving the app.
type fakeResource struct {
	mu     sync.Mutex
	links  []model.Link
	groups []model.LinkGroup

	replaced []model.Link
	deleted  []string
}

func (f *fakeResource) ListLinks(_ context.Context, opts client.ListOptions) (*client.LinkPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := parseTestFilter(opts.Filter)
	var items []model.Link
	for _, l := range f.links {
		if ids == nil || ids[l.ID] {
			items = append(items, l)
		}
	}

	total := len(items)
	start := (opts.Page - 1) * opts.Size
	if start > total {
		start = total
	}
	end := start + opts.Size
	if end > total {
		end = total
	}

	return &client.LinkPage{
		Items: append([]model.Link{}, items[start:end]...),
		Total: total,
		Page:  opts.Page,
		Size:  opts.Size,
	}, nil
}

func (f *fakeResource) CreateLink(_ context.Context, link model.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, link)
	return nil
}

func (f *fakeResource) ReplaceLink(_ context.Context, link model.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, link)
	for i := range f.links {
		if f.links[i].ID == link.ID {
			f.links[i] = link
			return nil
		}
	}
	return fmt.Errorf("link %s not found", link.ID)
}

func (f *fakeResource) DeleteLink(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i := range f.links {
		if f.links[i].ID == id {
			f.links = append(f.links[:i], f.links[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeResource) ListGroups(_ context.Context) ([]model.LinkGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.LinkGroup, len(f.groups))
	copy(out, f.groups)
	return out, nil
}

func (f *fakeResource) ReplaceGroup(_ context.Context, group model.LinkGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.groups {
		if f.groups[i].ID == group.ID {
			f.groups[i] = group
			return nil
		}
	}
	return fmt.Errorf("group %s not found", group.ID)
}

func parseTestFilter(filter string) map[string]bool {
	if filter == "" {
		return nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(filter, "id in ("), ")")
	ids := make(map[string]bool)
	for _, id := range strings.Split(inner, ",") {
		ids[strings.TrimSpace(id)] = true
	}
	return ids
}

// newTestApp builds an app over a fake with n links in the first group
// and runs the initial group load.
func newTestApp(t *testing.T, n int) (App, *fakeResource) {
	t.Helper()

	f := &fakeResource{}
	var ids []string
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("l%d", i+1)
		p := i
		f.links = append(f.links, model.Link{
			ID: id, Name: "Link " + id, URL: "https://" + id + ".example", Priority: &p,
		})
		ids = append(ids, id)
	}
	f.groups = []model.LinkGroup{
		{ID: "g1", Name: "Dev", Priority: 1, Links: ids},
		{ID: "g2", Name: "Empty", Priority: 2},
	}

	app := NewApp(AppParams{Panel: panel.New(panel.Params{Resource: f})})
	app = drive(t, app, app.Init()())
	return app, f
}

// drive feeds msg into Update and keeps executing returned commands
// until none remain.
func drive(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, cmd := a.Update(msg)
	app := m.(App)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		m, cmd = app.Update(out)
		app = m.(App)
	}
	return app
}

func pressRune(t *testing.T, a App, r rune) App {
	t.Helper()
	return drive(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressKey(t *testing.T, a App, k tea.KeyType) App {
	t.Helper()
	return drive(t, a, tea.KeyMsg{Type: k})
}

func TestApp_InitialLoad(t *testing.T) {
	app, _ := newTestApp(t, 3)

	if g := app.panel.SelectedGroup(); g == nil || g.ID != "g1" {
		t.Fatalf("expected first group applied, got %+v", g)
	}
	if len(app.panel.Page()) != 3 {
		t.Fatalf("expected 3 links on the page, got %d", len(app.panel.Page()))
	}
}

func TestApp_CursorNavigation(t *testing.T) {
	app, _ := newTestApp(t, 3)

	app = pressRune(t, app, 'j')
	if app.cursor != 1 {
		t.Errorf("after j, expected cursor 1, got %d", app.cursor)
	}

	app = pressRune(t, app, 'k')
	if app.cursor != 0 {
		t.Errorf("after k, expected cursor 0, got %d", app.cursor)
	}

	// k at top stays at 0 (no wrap)
	app = pressRune(t, app, 'k')
	if app.cursor != 0 {
		t.Errorf("k at top should stay at 0, got %d", app.cursor)
	}

	app = pressRune(t, app, 'G')
	if app.cursor != 2 {
		t.Errorf("after G, expected cursor 2, got %d", app.cursor)
	}

	// gg sequence
	app = pressRune(t, app, 'g')
	app = pressRune(t, app, 'g')
	if app.cursor != 0 {
		t.Errorf("after gg, expected cursor 0, got %d", app.cursor)
	}
}

func TestApp_ToggleSelection(t *testing.T) {
	app, _ := newTestApp(t, 3)

	app = pressKey(t, app, tea.KeySpace)
	if !app.panel.IsChecked("l1") {
		t.Error("space should check the cursor row")
	}

	app = pressKey(t, app, tea.KeySpace)
	if app.panel.IsChecked("l1") {
		t.Error("space again should uncheck the cursor row")
	}

	app = pressRune(t, app, 'a')
	if !app.panel.AllSelected() || app.panel.CheckedCount() != 3 {
		t.Errorf("a should select the full page, got %d checked", app.panel.CheckedCount())
	}

	app = pressRune(t, app, 'a')
	if app.panel.CheckedCount() != 0 {
		t.Errorf("a again should clear the selection, got %d checked", app.panel.CheckedCount())
	}
}

func TestApp_SearchNarrowsRows(t *testing.T) {
	app, _ := newTestApp(t, 3)

	app = pressRune(t, app, '/')
	if app.mode != ModeSearch {
		t.Fatal("/ should enter search mode")
	}

	app = drive(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l3")})
	if rows := app.linkRows(); len(rows) != 1 || rows[0].Link.ID != "l3" {
		t.Fatalf("expected only l3 displayed, got %d rows", len(app.linkRows()))
	}

	// Enter keeps the keyword applied
	app = pressKey(t, app, tea.KeyEnter)
	if app.mode != ModeNormal || app.panel.Keyword() != "l3" {
		t.Errorf("keyword should survive Enter, got %q", app.panel.Keyword())
	}

	// Esc from a fresh search clears it
	app = pressRune(t, app, '/')
	app = pressKey(t, app, tea.KeyEsc)
	if app.panel.Keyword() != "" {
		t.Errorf("Esc should clear the keyword, got %q", app.panel.Keyword())
	}
	if len(app.linkRows()) != 3 {
		t.Errorf("cleared search should show the full page, got %d rows", len(app.linkRows()))
	}
}

func TestApp_ReorderCommitsDisplayedOrder(t *testing.T) {
	app, f := newTestApp(t, 3)

	app = pressRune(t, app, 'J')
	if app.mode != ModeReorder {
		t.Fatal("J should enter reorder mode")
	}
	if app.pending[0].ID != "l2" || app.pending[1].ID != "l1" {
		t.Fatalf("J should move the first link down, got %s,%s", app.pending[0].ID, app.pending[1].ID)
	}

	app = pressKey(t, app, tea.KeyEnter)
	if app.mode != ModeNormal {
		t.Fatal("Enter should leave reorder mode")
	}

	if len(f.replaced) != 3 {
		t.Fatalf("expected 3 replace writes, got %d", len(f.replaced))
	}

	// Reconciled page shows the committed order with positional priorities
	page := app.panel.Page()
	if page[0].ID != "l2" || page[1].ID != "l1" || page[2].ID != "l3" {
		t.Errorf("unexpected page order: %s,%s,%s", page[0].ID, page[1].ID, page[2].ID)
	}
	for i, l := range page {
		if model.ResolvePriority(l.Priority) != i {
			t.Errorf("link %s: priority %d, want %d", l.ID, model.ResolvePriority(l.Priority), i)
		}
	}
}

func TestApp_ReorderEscCancels(t *testing.T) {
	app, f := newTestApp(t, 3)

	app = pressRune(t, app, 'J')
	app = pressKey(t, app, tea.KeyEsc)

	if app.mode != ModeNormal || app.pending != nil {
		t.Fatal("Esc should abandon the gesture")
	}
	if len(f.replaced) != 0 {
		t.Errorf("cancelled gesture must not write, got %d writes", len(f.replaced))
	}
	if app.panel.Page()[0].ID != "l1" {
		t.Error("page order should be unchanged after cancel")
	}
}

func TestApp_NavigatorBoundaryClears(t *testing.T) {
	app, _ := newTestApp(t, 2)

	app = pressRune(t, app, 'n')
	if l := app.panel.Active(); l == nil || l.ID != "l1" {
		t.Fatal("first n should land on the first link")
	}

	app = pressRune(t, app, 'n')
	app = pressRune(t, app, 'n')
	if app.panel.Active() != nil {
		t.Error("n past the last link should clear, not wrap")
	}

	app = pressRune(t, app, 'n')
	app = pressRune(t, app, 'p')
	if app.panel.Active() != nil {
		t.Error("p past the first link should clear, not wrap")
	}
}

func TestApp_Paging(t *testing.T) {
	app, _ := newTestApp(t, 25)

	app = pressRune(t, app, ']')
	if app.panel.PageNum() != 2 || len(app.panel.Page()) != 5 {
		t.Fatalf("expected page 2 with 5 links, got page %d with %d",
			app.panel.PageNum(), len(app.panel.Page()))
	}

	// ] on the last page is a no-op
	app = pressRune(t, app, ']')
	if app.panel.PageNum() != 2 {
		t.Errorf("] past the last page should not advance, got %d", app.panel.PageNum())
	}

	app = pressRune(t, app, '[')
	if app.panel.PageNum() != 1 || len(app.panel.Page()) != 20 {
		t.Errorf("expected page 1 with 20 links, got page %d with %d",
			app.panel.PageNum(), len(app.panel.Page()))
	}
}

func TestApp_DeleteFlow(t *testing.T) {
	app, f := newTestApp(t, 3)

	// d with nothing selected warns instead of opening the modal
	app = pressRune(t, app, 'd')
	if app.mode != ModeNormal {
		t.Fatal("d without selection should not open the confirm modal")
	}

	app = pressKey(t, app, tea.KeySpace)
	app = pressRune(t, app, 'd')
	if app.mode != ModeConfirmDelete {
		t.Fatal("d with selection should open the confirm modal")
	}

	app = pressKey(t, app, tea.KeyEnter)
	if len(f.deleted) != 1 || f.deleted[0] != "l1" {
		t.Fatalf("expected l1 deleted, got %v", f.deleted)
	}
	if len(app.panel.Page()) != 2 {
		t.Errorf("reconciled page should have 2 links, got %d", len(app.panel.Page()))
	}
}

func TestApp_GroupSwitchResetsPageScope(t *testing.T) {
	app, _ := newTestApp(t, 3)

	app = pressRune(t, app, '/')
	app = drive(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l1")})
	app = pressKey(t, app, tea.KeyEnter)
	app = pressKey(t, app, tea.KeySpace)

	// Focus the group pane, move to the empty group, open it
	app = pressRune(t, app, 'h')
	if app.focusedPane != PaneGroups {
		t.Fatal("h should focus the group pane")
	}
	app = pressRune(t, app, 'j')
	app = pressRune(t, app, 'l')

	if g := app.panel.SelectedGroup(); g == nil || g.ID != "g2" {
		t.Fatalf("expected g2 applied, got %+v", g)
	}
	if app.focusedPane != PaneLinks {
		t.Error("opening a group should focus the link pane")
	}
	if app.panel.Keyword() != "" || app.panel.CheckedCount() != 0 {
		t.Error("search and selection must not survive a group switch")
	}
	if len(app.panel.Page()) != 0 {
		t.Errorf("empty group should clear the page, got %d links", len(app.panel.Page()))
	}
}

func TestApp_AddLinkAssignsToGroup(t *testing.T) {
	app, f := newTestApp(t, 2)

	app = pressRune(t, app, 'c')
	if app.mode != ModeAdd {
		t.Fatal("c should open the add modal")
	}

	app = drive(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Docs")})
	app = pressKey(t, app, tea.KeyTab)
	app = drive(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://docs.example")})
	app = pressKey(t, app, tea.KeyEnter)

	if app.mode != ModeNormal {
		t.Fatal("Enter should close the add modal")
	}
	if len(f.links) != 3 {
		t.Fatalf("expected the link created, have %d links", len(f.links))
	}
	if g := app.panel.SelectedGroup(); len(g.Links) != 3 {
		t.Errorf("expected membership grown to 3, got %d", len(g.Links))
	}
	if len(app.panel.Page()) != 3 {
		t.Errorf("reloaded page should include the new link, got %d", len(app.panel.Page()))
	}
}
