package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/tui/layout"
)

// renderView creates the complete two-pane view: the group catalog on
// the left, the loaded link page on the right.
func (a App) renderView() string {
	switch a.mode {
	case ModeAdd, ModeConfirmDelete, ModeImport:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderGroupsPane(panes.GroupsWidth, paneHeight),
		a.renderLinksPane(panes.LinksWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the summary line above the panes.
func (a App) renderHeader() string {
	var parts []string
	if g := a.panel.SelectedGroup(); g != nil {
		parts = append(parts, g.Name)
	}
	if total := a.panel.Total(); total > 0 {
		pages := (total + a.panel.PageSize() - 1) / a.panel.PageSize()
		parts = append(parts, fmt.Sprintf("page %d/%d", a.panel.PageNum(), pages))
		parts = append(parts, fmt.Sprintf("%d links", total))
	}
	if n := a.panel.CheckedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if a.panel.Loading() || a.busy {
		parts = append(parts, "loading...")
	}

	return a.styles.Title.Render("lp") + a.styles.Header.Render(strings.Join(parts, "  "))
}

// renderGroupsPane renders the group catalog.
func (a App) renderGroupsPane(width, height int) string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Groups") + "\n")

	groups := a.panel.Groups()
	visibleHeight := layout.CalculateVisibleHeight(height, 1)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(groups) == 0 {
		content.WriteString(a.styles.Empty.Render("(no groups)"))
	} else {
		offset := layout.CalculateViewportOffset(a.groupCursor, len(groups), visibleHeight)

		for i, g := range groups {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			content.WriteString(a.renderGroupRow(g, i, itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.focusedPane == PaneGroups {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderGroupRow renders one group with its member count. The applied
// group carries a "*" marker.
func (a App) renderGroupRow(g model.LinkGroup, index, maxWidth int) string {
	prefix := "  "
	if index == a.panel.SelectedIndex() {
		prefix = "* "
	}
	suffix := fmt.Sprintf(" (%d)", len(g.Links))

	line, _ := layout.TruncateWithPrefixSuffix(g.Name, maxWidth, prefix, suffix, a.layoutConfig.Text)

	if a.focusedPane == PaneGroups && index == a.groupCursor {
		for len(line) < maxWidth {
			line += " "
		}
		return a.styles.ItemSelected.Render(line)
	}
	if index == a.panel.SelectedIndex() {
		return a.styles.ItemMarked.Render(line)
	}
	return a.styles.Item.Render(line)
}

// renderLinksPane renders the loaded page, narrowed by the active search.
func (a App) renderLinksPane(width, height int) string {
	var content strings.Builder

	headerLines := 0
	if a.mode == ModeSearch || a.panel.Keyword() != "" {
		headerLines = 1
	}
	visibleHeight := layout.CalculateVisibleHeight(height, headerLines)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	// Show search input or indicator at top
	if a.mode == ModeSearch {
		content.WriteString("/" + a.search.Input.View() + "\n")
	} else if kw := a.panel.Keyword(); kw != "" {
		content.WriteString(a.styles.URL.Render("/"+kw) + "\n")
	}

	rows := a.linkRows()
	matches := a.matchIndexes()

	if len(rows) == 0 {
		if a.panel.Keyword() != "" {
			content.WriteString(a.styles.Empty.Render("(no matches)"))
		} else {
			content.WriteString(a.styles.Empty.Render("(empty group)"))
		}
	} else {
		offset := layout.CalculateViewportOffset(a.cursor, len(rows), visibleHeight)

		for i, row := range rows {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			content.WriteString(a.renderLinkRow(row, matches[row.Link.ID], itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.focusedPane == PaneLinks {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// matchIndexes maps link IDs to the matched byte offsets of the active
// search, for highlighting.
func (a App) matchIndexes() map[string][]int {
	if a.panel.Keyword() == "" || a.mode == ModeReorder {
		return nil
	}
	out := make(map[string][]int)
	for _, r := range a.panel.Matches() {
		out[r.Link.ID] = r.MatchedIndexes
	}
	return out
}

// renderLinkRow renders one link with checkbox, navigator marker, and
// pending-delete suffix. Matched search characters are highlighted.
func (a App) renderLinkRow(r Row, matched []int, maxWidth int) string {
	prefix := "  " + r.Checkbox()
	if r.Active {
		prefix = "▸ " + r.Checkbox()
	}

	var suffix string
	if r.Link.Deleting() {
		suffix = " (deleting)"
	}

	// Match offsets index the joined search text, which starts with the
	// name; only those inside the name are highlighted.
	matchSet := make(map[int]bool)
	for _, idx := range matched {
		if idx < len(r.Link.Name) {
			matchSet[idx] = true
		}
	}

	var name strings.Builder
	for i, ch := range r.Link.Name {
		if matchSet[i] {
			name.WriteString("\033[1;4m")
			name.WriteRune(ch)
			name.WriteString("\033[22;24m")
		} else {
			name.WriteRune(ch)
		}
	}

	line := prefix + name.String() + suffix
	if layout.VisibleLength(line) > maxWidth {
		line = layout.TruncateANSIAware(line, maxWidth, a.layoutConfig.Text)
	}
	if vis := layout.VisibleLength(line); vis < maxWidth {
		line += strings.Repeat(" ", maxWidth-vis)
	}

	switch {
	case r.Cursor && a.mode == ModeReorder:
		return a.styles.ItemMarkedCursor.Render(line)
	case r.Cursor:
		return a.styles.ItemSelected.Render(line)
	case r.Checked:
		return a.styles.ItemMarked.Render(line)
	case r.Link.Deleting():
		return a.styles.Deleting.Render(layout.StripANSI(line))
	}
	return a.styles.Item.Render(line)
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	var title, content strings.Builder

	switch a.mode {
	case ModeAdd:
		group := "?"
		if g := a.panel.SelectedGroup(); g != nil {
			group = g.Name
		}
		title.WriteString("Add Link to " + group + "\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.add.NameInput.View())
		content.WriteString("\n\n")
		content.WriteString("URL:\n")
		content.WriteString(a.add.URLInput.View())

	case ModeConfirmDelete:
		count := a.panel.CheckedCount()
		if count == 1 {
			title.WriteString("Delete 1 link?\n\n")
		} else {
			title.WriteString(fmt.Sprintf("Delete %d links?\n\n", count))
		}
		content.WriteString(a.styles.Help.Render("Entries keep showing as deleting until the server completes the removal.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeImport:
		title.WriteString(fmt.Sprintf("Import from %s (%d files)\n\n", a.importDir, len(a.files.Files)))

		maxVisible := a.layoutConfig.Modal.PickerMaxVisible
		start, end := layout.CalculateVisibleListItems(maxVisible, a.files.Cursor, len(a.files.Files))

		for i := start; i < end; i++ {
			name := filepath.Base(a.files.Files[i])
			if i == a.files.Cursor {
				content.WriteString(a.styles.ItemSelected.Render("▸ " + name))
			} else {
				content.WriteString("  " + name)
			}
			content.WriteString("\n")
		}
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: contextual keyboard hints
	hints := a.renderHints(a.getContextualHints())
	if hints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Keys ")+hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("h/l  groups/links\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("n/p  next/prev link\n")
	left.WriteString("[/]  prev/next page\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("order") + "\n")
	left.WriteString("J/K  move link\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("select") + "\n")
	left.WriteString("spc  toggle\n")
	left.WriteString("a    toggle all\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("/    search page\n")
	right.WriteString("c    create link\n")
	right.WriteString("d    delete selected\n")
	right.WriteString("e    export selected\n")
	right.WriteString("i    import file\n")
	right.WriteString("Y    yank URL\n")
	right.WriteString("r    refresh\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
