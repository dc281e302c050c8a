package server_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/lp/internal/client"
	"github.com/nikbrunner/lp/internal/model"
	"github.com/nikbrunner/lp/internal/server"
)

// newAPI spins up the resource API on an httptest server and returns a
// client pointed at it plus the backing store for fixture setup.
func newAPI(t *testing.T) (*client.Client, *server.Store) {
	t.Helper()
	store, err := server.NewStore(filepath.Join(t.TempDir(), "lp.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.NewServer(store, nil).Routes())
	t.Cleanup(srv.Close)

	return client.New(srv.URL), store
}

func TestAPI_LinkRoundTrip(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	p := 4
	link := model.Link{
		ID: "l1", Name: "GitHub", URL: "https://github.com",
		Priority: &p, CreatedAt: time.Now(),
	}
	if err := api.CreateLink(ctx, link); err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}

	got, err := api.GetLink(ctx, "l1")
	if err != nil {
		t.Fatalf("GetLink failed: %v", err)
	}
	if got.Name != "GitHub" || model.ResolvePriority(got.Priority) != 4 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	got.Name = "GitHub Home"
	if err := api.ReplaceLink(ctx, *got); err != nil {
		t.Fatalf("ReplaceLink failed: %v", err)
	}

	page, err := api.ListLinks(ctx, client.ListOptions{Page: 1, Size: 20})
	if err != nil {
		t.Fatalf("ListLinks failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "GitHub Home" {
		t.Errorf("replace not visible in list: %+v", page.Items)
	}
}

func TestAPI_MembershipFilter(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		err := api.CreateLink(ctx, model.Link{ID: id, Name: id, URL: "https://" + id + ".example"})
		if err != nil {
			t.Fatal(err)
		}
	}

	page, err := api.ListLinks(ctx, client.ListOptions{
		Page: 1, Size: 20,
		Filter: client.MembershipFilter([]string{"a", "c"}),
	})
	if err != nil {
		t.Fatalf("ListLinks failed: %v", err)
	}

	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("expected exactly the 2 members, got %d/%d", len(page.Items), page.Total)
	}
	for _, l := range page.Items {
		if l.ID == "b" {
			t.Error("filter returned a non-member")
		}
	}
}

func TestAPI_DeleteShowsPendingThenSettles(t *testing.T) {
	api, _ := newAPI(t)
	ctx := context.Background()

	if err := api.CreateLink(ctx, model.Link{ID: "l1", Name: "Doomed", URL: "https://d.example"}); err != nil {
		t.Fatal(err)
	}
	if err := api.DeleteLink(ctx, "l1"); err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}

	page, err := api.ListLinks(ctx, client.ListOptions{Page: 1, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].DeletedAt == nil {
		t.Errorf("deleted link should list as pending: %+v", page.Items)
	}
}

func TestAPI_GroupReplaceCarriesMembership(t *testing.T) {
	api, store := newAPI(t)
	ctx := context.Background()

	err := store.CreateGroup(model.LinkGroup{ID: "g1", Name: "Dev", Priority: 1, Links: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}

	groups, err := api.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Links) != 1 {
		t.Fatalf("unexpected catalog: %+v", groups)
	}

	updated := groups[0].Clone()
	updated.Links = append(updated.Links, "b")
	if err := api.ReplaceGroup(ctx, updated); err != nil {
		t.Fatalf("ReplaceGroup failed: %v", err)
	}

	groups, _ = api.ListGroups(ctx)
	if len(groups[0].Links) != 2 || groups[0].Links[1] != "b" {
		t.Errorf("membership replacement lost: %+v", groups[0].Links)
	}
}

func TestAPI_UnknownLinkIs404(t *testing.T) {
	api, _ := newAPI(t)

	_, err := api.GetLink(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for unknown link")
	}
}
