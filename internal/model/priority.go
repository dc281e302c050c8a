package model

import "sort"

// ResolvePriority resolves an optional priority to its display value.
// A link persisted without a priority sorts as 0. This is the only place
// the default lives; callers must not re-implement it.
func ResolvePriority(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// SortByPriority sorts links ascending by resolved priority.
// The sort is stable: ties keep their server-returned order.
func SortByPriority(links []*Link) {
	sort.SliceStable(links, func(i, j int) bool {
		return ResolvePriority(links[i].Priority) < ResolvePriority(links[j].Priority)
	})
}

// SortGroupsByPriority sorts groups ascending by priority, stable on ties.
func SortGroupsByPriority(groups []LinkGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Priority < groups[j].Priority
	})
}
