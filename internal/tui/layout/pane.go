package layout

// PaneLayout holds calculated pane dimensions.
type PaneLayout struct {
	GroupsWidth int
	LinksWidth  int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths computes the widths for the two-pane layout:
// the group catalog on the left, the link page taking the remainder.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	groups := terminalWidth * cfg.GroupsWidthPercent / 100
	if groups < cfg.MinGroupsWidth {
		groups = cfg.MinGroupsWidth
	}

	links := terminalWidth - groups - cfg.TwoPaneWidthOffset
	if links < cfg.MinLinksWidth {
		links = cfg.MinLinksWidth
	}

	return PaneLayout{
		GroupsWidth: groups,
		LinksWidth:  links,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
