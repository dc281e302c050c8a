package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "select")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar:
// "j/k:move space:select /:search"
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals:
// "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() []Hint {
	switch a.mode {
	case ModeNormal:
		if a.focusedPane == PaneGroups {
			return []Hint{
				{Key: "j/k", Desc: "move"},
				{Key: "l", Desc: "open"},
				{Key: "?", Desc: "help"},
				{Key: "q", Desc: "quit"},
			}
		}
		return []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "J/K", Desc: "reorder"},
			{Key: "space", Desc: "select"},
			{Key: "a", Desc: "all"},
			{Key: "/", Desc: "search"},
			{Key: "d", Desc: "del"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeSearch:
		return []Hint{
			{Key: "type", Desc: "search"},
			{Key: "Enter", Desc: "apply"},
			{Key: "Esc", Desc: "clear"},
		}
	case ModeReorder:
		return []Hint{
			{Key: "J/K", Desc: "move"},
			{Key: "Enter", Desc: "commit"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeAdd:
		return []Hint{
			{Key: "Tab", Desc: "next"},
			{Key: "Enter", Desc: "save"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeImport:
		return []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "Enter", Desc: "import"},
			{Key: "Esc", Desc: "cancel"},
		}
	case ModeHelp:
		return []Hint{
			{Key: "?/Esc", Desc: "close"},
		}
	default:
		return nil
	}
}
