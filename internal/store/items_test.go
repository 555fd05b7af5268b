package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

func newItem(title string) *model.Item {
	return &model.Item{
		Title:       title,
		Description: "black leather wallet",
		Location:    "main library, 2nd floor",
		Category:    model.CategoryAccessories,
		FinderName:  "Eva",
		FinderEmail: "eva@example.com",
		FinderPhone: "041123456",
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, newItem("Wallet"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Error("expected assigned id")
	}
	if item.Status != model.StatusFound {
		t.Errorf("expected status 'found', got %q", item.Status)
	}
	if item.ClaimedBy != "" || item.ClaimedAt != nil {
		t.Errorf("expected empty claimant fields, got %q/%v", item.ClaimedBy, item.ClaimedAt)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil {
		t.Fatal("expected item to be readable after create")
	}
	if got.Title != "Wallet" || got.Location != item.Location || got.Category != item.Category ||
		got.FinderName != item.FinderName || got.FinderEmail != item.FinderEmail {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, "no-such-id")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for unknown id, got %+v", item)
	}
}

func TestListItemsFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateItem(ctx, database, newItem("Wallet"))
	second := newItem("Phone")
	second.FinderEmail = "other@example.com"
	CreateItem(ctx, database, second)

	now := time.Now().UTC()
	UpdateItemStatus(ctx, database, first.ID, model.StatusFound, model.StatusPending, "owner@example.com", &now)

	all, err := ListItems(ctx, database, "", "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}

	found, _ := ListItems(ctx, database, model.StatusFound, "")
	if len(found) != 1 || found[0].Title != "Phone" {
		t.Errorf("expected only 'Phone' to be found, got %+v", found)
	}

	byFinder, _ := ListItems(ctx, database, "", "eva@example.com")
	if len(byFinder) != 1 || byFinder[0].Title != "Wallet" {
		t.Errorf("expected only Eva's item, got %+v", byFinder)
	}
}

func TestUpdateItemStatusConditioned(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Wallet"))
	now := time.Now().UTC()

	affected, err := UpdateItemStatus(ctx, database, item.ID, model.StatusFound, model.StatusPending, "owner@example.com", &now)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	// The condition no longer holds, so the write must not land.
	affected, err = UpdateItemStatus(ctx, database, item.ID, model.StatusFound, model.StatusPending, "late@example.com", &now)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected for stale expected status, got %d", affected)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.ClaimedBy != "owner@example.com" {
		t.Errorf("expected first writer to win, claimant is %q", got.ClaimedBy)
	}
}

func TestUpdateItemStatusClearsClaimant(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Wallet"))
	now := time.Now().UTC()
	UpdateItemStatus(ctx, database, item.ID, model.StatusFound, model.StatusPending, "owner@example.com", &now)

	affected, err := UpdateItemStatus(ctx, database, item.ID, model.StatusPending, model.StatusFound, "", nil)
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Status != model.StatusFound {
		t.Errorf("expected status 'found', got %q", got.Status)
	}
	if got.ClaimedBy != "" || got.ClaimedAt != nil {
		t.Errorf("expected claimant fields cleared, got %q/%v", got.ClaimedBy, got.ClaimedAt)
	}
}
