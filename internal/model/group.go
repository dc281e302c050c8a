package model

// LinkGroup is a named, ordered collection of link IDs.
// The Links sequence is the sole authority for group membership.
type LinkGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Priority int      `json:"priority"`
	Links    []string `json:"links"`
}

// NewLinkGroupParams holds parameters for creating a new LinkGroup.
type NewLinkGroupParams struct {
	Name     string
	Priority int
}

// NewLinkGroup creates a LinkGroup with generated UUID and empty membership.
func NewLinkGroup(params NewLinkGroupParams) LinkGroup {
	return LinkGroup{
		ID:       GenerateUUID(),
		Name:     params.Name,
		Priority: params.Priority,
		Links:    []string{},
	}
}

// Clone returns a deep copy of the group. Membership writes operate on a
// copy and are persisted as a full replacement of the group resource.
func (g LinkGroup) Clone() LinkGroup {
	c := g
	c.Links = make([]string, len(g.Links))
	copy(c.Links, g.Links)
	return c
}

// Contains reports whether id is in the group's membership sequence.
func (g LinkGroup) Contains(id string) bool {
	for _, l := range g.Links {
		if l == id {
			return true
		}
	}
	return false
}
