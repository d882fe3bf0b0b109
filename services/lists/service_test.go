package lists

import (
	"errors"
	"strconv"
	"testing"

	"sutra/models"
	"sutra/services/metadata"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(t.TempDir(), metadata.BuiltinTitles())
	if err != nil {
		t.Fatalf("failed to create list service: %v", err)
	}
	return svc
}

func TestSeededListsPresent(t *testing.T) {
	svc := newTestService(t)

	editorial := svc.Editorial()
	if len(editorial) != 4 {
		t.Fatalf("expected 4 editorial lists, got %d", len(editorial))
	}

	personal := svc.ForUser("")
	if len(personal) != 1 || personal[0].Title != "My Watchlist" {
		t.Fatalf("expected the personal starter list, got %+v", personal)
	}

	gems, err := svc.Get("list-sutra-1")
	if err != nil {
		t.Fatalf("hidden gems list missing: %v", err)
	}
	for _, item := range gems.Items {
		rating, err := strconv.ParseFloat(item.IMDBRating, 64)
		if err != nil || rating <= 8.5 {
			t.Errorf("hidden gems should be high rated, got %s=%s", item.Title, item.IMDBRating)
		}
	}
}

func TestCreateAddRemovePersists(t *testing.T) {
	dir := t.TempDir()
	svc, err := New(dir, metadata.BuiltinTitles())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list, err := svc.Create("", models.ListUpsert{Title: "Noir Nights", IsPublic: true, Tags: []string{"Noir"}})
	if err != nil {
		t.Fatalf("create list failed: %v", err)
	}

	if _, err := svc.AddItem(list.ID, models.Media{IMDBID: "tt0468569", Title: "The Dark Knight"}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// Duplicate adds are silently ignored.
	if _, err := svc.AddItem(list.ID, models.Media{IMDBID: "tt0468569"}); err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}

	// Reload from disk and verify everything survived.
	reloaded, err := New(dir, nil)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := reloaded.Get(list.ID)
	if err != nil {
		t.Fatalf("created list missing after reload: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item after dedup, got %d", len(got.Items))
	}

	if _, err := reloaded.RemoveItem(list.ID, "tt0468569"); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	got, _ = reloaded.Get(list.ID)
	if len(got.Items) != 0 {
		t.Fatalf("expected empty list after removal, got %d items", len(got.Items))
	}
}

func TestToggleSaveRoundTrip(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.ToggleSave("list-1")
	if err != nil || !saved {
		t.Fatalf("expected first toggle to save, got saved=%v err=%v", saved, err)
	}
	if lists := svc.Saved(); len(lists) != 1 || lists[0].ID != "list-1" {
		t.Fatalf("saved lists wrong: %+v", lists)
	}
	before, _ := svc.Get("list-1")

	saved, err = svc.ToggleSave("list-1")
	if err != nil || saved {
		t.Fatalf("expected second toggle to unsave, got saved=%v err=%v", saved, err)
	}
	if lists := svc.Saved(); len(lists) != 0 {
		t.Fatalf("expected no saved lists, got %d", len(lists))
	}
	after, _ := svc.Get("list-1")
	if after.Saves != before.Saves-1 {
		t.Fatalf("save counter not decremented: before=%d after=%d", before.Saves, after.Saves)
	}
}

func TestDeleteUnknownList(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Delete("list-nope"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestDeleteRemovesBookmark(t *testing.T) {
	svc := newTestService(t)

	svc.ToggleSave("list-1")
	if err := svc.Delete("list-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if lists := svc.Saved(); len(lists) != 0 {
		t.Fatalf("bookmark should die with the list, got %+v", lists)
	}
	if _, err := svc.Get("list-1"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected list gone, got %v", err)
	}
}

func TestLikeAndPrivacy(t *testing.T) {
	svc := newTestService(t)

	before, _ := svc.Get("list-4")
	liked, err := svc.Like("list-4")
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if liked.Likes != before.Likes+1 {
		t.Fatalf("likes not incremented: %d -> %d", before.Likes, liked.Likes)
	}

	flipped, err := svc.TogglePrivacy("list-4")
	if err != nil {
		t.Fatalf("toggle privacy failed: %v", err)
	}
	if flipped.IsPublic == before.IsPublic {
		t.Fatal("privacy did not flip")
	}
}
