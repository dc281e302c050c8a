package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nikbrunner/lp/internal/model"
)

// Helper functions for pointers
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func TestLink_JSONSerialization(t *testing.T) {
	tests := []struct {
		name string
		link model.Link
	}{
		{
			name: "link with all fields",
			link: model.Link{
				ID:          "l1",
				Name:        "TanStack Router",
				URL:         "https://tanstack.com/router",
				Description: "Type-safe routing",
				Logo:        "tanstack.png",
				Priority:    intPtr(3),
				CreatedAt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
				DeletedAt:   timePtr(time.Date(2025, 1, 20, 14, 22, 0, 0, time.UTC)),
			},
		},
		{
			name: "link without priority",
			link: model.Link{
				ID:        "l2",
				Name:      "Hacker News",
				URL:       "https://news.ycombinator.com",
				CreatedAt: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.link)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Link
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got.ID != tt.link.ID {
				t.Errorf("ID mismatch: got %q, want %q", got.ID, tt.link.ID)
			}
			if got.Name != tt.link.Name {
				t.Errorf("Name mismatch: got %q, want %q", got.Name, tt.link.Name)
			}
			if model.ResolvePriority(got.Priority) != model.ResolvePriority(tt.link.Priority) {
				t.Errorf("Priority mismatch: got %d, want %d",
					model.ResolvePriority(got.Priority), model.ResolvePriority(tt.link.Priority))
			}
		})
	}
}

func TestLink_AbsentPriorityOmitted(t *testing.T) {
	link := model.Link{ID: "l1", Name: "Go", URL: "https://go.dev"}

	data, err := json.Marshal(link)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal raw: %v", err)
	}
	if _, ok := raw["priority"]; ok {
		t.Error("absent priority should be omitted from JSON, not serialized as 0")
	}
}

func TestResolvePriority(t *testing.T) {
	if got := model.ResolvePriority(nil); got != 0 {
		t.Errorf("nil priority should resolve to 0, got %d", got)
	}
	if got := model.ResolvePriority(intPtr(7)); got != 7 {
		t.Errorf("priority 7 should resolve to 7, got %d", got)
	}
}

func TestSortByPriority_StableTies(t *testing.T) {
	// Two links tied at 0 keep their server-returned order.
	links := []*model.Link{
		{ID: "b", Name: "Second", Priority: intPtr(0)},
		{ID: "c", Name: "High", Priority: intPtr(2)},
		{ID: "a", Name: "First"}, // absent priority resolves to 0
	}

	model.SortByPriority(links)

	want := []string{"b", "a", "c"}
	for i, id := range want {
		if links[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, links[i].ID, id)
		}
	}
}

func TestLinkGroup_Clone(t *testing.T) {
	g := model.LinkGroup{ID: "g1", Name: "Dev", Priority: 1, Links: []string{"a", "b"}}

	c := g.Clone()
	c.Links = append(c.Links, "c")

	if len(g.Links) != 2 {
		t.Errorf("clone mutation leaked into original: %v", g.Links)
	}
	if !c.Contains("c") || c.Contains("x") {
		t.Error("Contains gave wrong membership answer")
	}
}

func TestLink_Deleting(t *testing.T) {
	now := time.Now()
	if (model.Link{}).Deleting() {
		t.Error("link without DeletedAt should not report deleting")
	}
	if !(model.Link{DeletedAt: &now}).Deleting() {
		t.Error("link with DeletedAt should report deleting")
	}
}

func TestNewLink_GeneratesIDAndTimestamp(t *testing.T) {
	l := model.NewLink(model.NewLinkParams{Name: "Go", URL: "https://go.dev"})

	if l.ID == "" {
		t.Error("expected generated ID")
	}
	if l.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if l.Priority != nil {
		t.Error("expected absent priority by default")
	}
}

func TestSortGroupsByPriority(t *testing.T) {
	groups := []model.LinkGroup{
		{ID: "g2", Name: "Tools", Priority: 2},
		{ID: "g1", Name: "Dev", Priority: 1},
		{ID: "g3", Name: "Misc", Priority: 2},
	}

	model.SortGroupsByPriority(groups)

	want := []string{"g1", "g2", "g3"}
	for i, id := range want {
		if groups[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, groups[i].ID, id)
		}
	}
}
