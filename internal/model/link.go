package model

import "time"

// Link represents a curated reference entry with display metadata.
type Link struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Logo        string     `json:"logo,omitempty"`
	Priority    *int       `json:"priority,omitempty"` // nil = absent, resolves to 0
	CreatedAt   time.Time  `json:"createdAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"` // non-nil = delete pending server-side
}

// NewLinkParams holds parameters for creating a new Link.
type NewLinkParams struct {
	Name        string
	URL         string
	Description string
	Logo        string
	Priority    *int
}

// NewLink creates a Link with generated UUID and creation timestamp.
func NewLink(params NewLinkParams) Link {
	return Link{
		ID:          GenerateUUID(),
		Name:        params.Name,
		URL:         params.URL,
		Description: params.Description,
		Logo:        params.Logo,
		Priority:    params.Priority,
		CreatedAt:   time.Now(),
	}
}

// Deleting reports whether the link has a pending soft delete.
// Such links still render until the server-side delete completes.
func (l Link) Deleting() bool {
	return l.DeletedAt != nil
}
