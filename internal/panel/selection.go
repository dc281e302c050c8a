package panel

import "github.com/nikbrunner/lp/internal/model"

// Toggle flips the checkbox for one link ID and recomputes the derived
// all-selected flag.
func (p *Panel) Toggle(id string) {
	if p.checked[id] {
		delete(p.checked, id)
	} else {
		p.checked[id] = true
	}
	p.recomputeAllSelected()
}

// ToggleAll selects every ID of the full loaded page when checked, even
// while a search keyword narrows the displayed view; unchecked clears
// the set.
func (p *Panel) ToggleAll(checked bool) {
	p.checked = map[string]bool{}
	if checked {
		for _, link := range p.page {
			p.checked[link.ID] = true
		}
	}
	p.recomputeAllSelected()
}

// IsChecked reports whether the given link ID is selected.
func (p *Panel) IsChecked(id string) bool { return p.checked[id] }

// CheckedCount returns the number of selected links.
func (p *Panel) CheckedCount() int { return len(p.checked) }

// AllSelected returns the derived flag comparing the selection size to
// the full page's item count. Under an active search filter this can
// read as unchecked even though every visible item is selected; that is
// the accepted behavior, not a defect.
func (p *Panel) AllSelected() bool { return p.allSelected }

// CheckedLinks returns the selected links from the full page, matched by
// identifier, in page order.
func (p *Panel) CheckedLinks() []*model.Link {
	var out []*model.Link
	for _, link := range p.page {
		if p.checked[link.ID] {
			out = append(out, link)
		}
	}
	return out
}

// recomputeAllSelected derives the flag from the current set size.
func (p *Panel) recomputeAllSelected() {
	p.allSelected = len(p.page) > 0 && len(p.checked) == len(p.page)
}

// pruneSelection drops checked IDs that are no longer on the page.
func (p *Panel) pruneSelection() {
	onPage := make(map[string]bool, len(p.page))
	for _, link := range p.page {
		onPage[link.ID] = true
	}
	for id := range p.checked {
		if !onPage[id] {
			delete(p.checked, id)
		}
	}
	if p.activeID != "" && !onPage[p.activeID] {
		p.activeID = ""
	}
	p.recomputeAllSelected()
}

// Active returns the navigator's current link, or nil if none.
func (p *Panel) Active() *model.Link {
	if p.activeID == "" {
		return nil
	}
	for _, link := range p.page {
		if link.ID == p.activeID {
			return link
		}
	}
	return nil
}

// Next moves the navigator forward over the full page. From no selection
// it lands on the first item; past the last item it clears the selection
// instead of wrapping around.
func (p *Panel) Next() {
	if len(p.page) == 0 {
		p.activeID = ""
		return
	}
	if p.activeID == "" {
		p.activeID = p.page[0].ID
		return
	}
	for i, link := range p.page {
		if link.ID == p.activeID {
			if i+1 < len(p.page) {
				p.activeID = p.page[i+1].ID
			} else {
				p.activeID = ""
			}
			return
		}
	}
	p.activeID = ""
}

// Prev moves the navigator backward over the full page; past the first
// item it clears the selection.
func (p *Panel) Prev() {
	if len(p.page) == 0 || p.activeID == "" {
		p.activeID = ""
		return
	}
	for i, link := range p.page {
		if link.ID == p.activeID {
			if i > 0 {
				p.activeID = p.page[i-1].ID
			} else {
				p.activeID = ""
			}
			return
		}
	}
	p.activeID = ""
}
