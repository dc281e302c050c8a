package tui

import "github.com/nikbrunner/lp/internal/model"

// Row is one rendered line of the link pane: the link plus the
// page-scoped flags derived for it.
type Row struct {
	Link    *model.Link
	Checked bool
	Active  bool // sequential navigator position
	Cursor  bool
}

// Checkbox returns the selection marker for the row.
func (r Row) Checkbox() string {
	if r.Checked {
		return "[x] "
	}
	return "[ ] "
}

// linkRows builds the rows for the currently displayed link sequence.
// During a reorder gesture the working order is shown instead of the
// panel's own view.
func (a App) linkRows() []Row {
	links := a.displayedLinks()
	active := a.panel.Active()

	rows := make([]Row, len(links))
	for i, l := range links {
		rows[i] = Row{
			Link:    l,
			Checked: a.panel.IsChecked(l.ID),
			Active:  active != nil && active.ID == l.ID,
			Cursor:  a.focusedPane == PaneLinks && i == a.cursor,
		}
	}
	return rows
}

// displayedLinks returns the sequence the link pane shows.
func (a App) displayedLinks() []*model.Link {
	if a.mode == ModeReorder && a.pending != nil {
		return a.pending
	}
	return a.panel.View()
}
