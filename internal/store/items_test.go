package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mkolar/najdeno/internal/db"
	"github.com/mkolar/najdeno/internal/model"
)

const testImage = "/static/images/default.svg"

func createTestUser(t *testing.T, database *sql.DB, name, email string) int64 {
	t.Helper()
	user, err := CreateUser(context.Background(), database, name, email, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	item, err := CreateItem(ctx, database, alice, "Wallet", "Brown leather wallet", "Accessories", model.StatusLost, "alice@example.com", testImage)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Title != "Wallet" {
		t.Errorf("expected title 'Wallet', got %q", item.Title)
	}
	if item.Status != model.StatusLost {
		t.Errorf("expected status 'Lost', got %q", item.Status)
	}
	if item.UserID != alice {
		t.Errorf("expected owner %d, got %d", alice, item.UserID)
	}
	if item.OwnerName != "Alice" {
		t.Errorf("expected owner name 'Alice', got %q", item.OwnerName)
	}
	if item.DatePosted.IsZero() {
		t.Error("expected date_posted to be set")
	}
}

func TestCreateItemRejectsResolvedStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	for _, status := range []string{model.StatusRecovered, model.StatusReturned, "Resolved", ""} {
		_, err := CreateItem(ctx, database, alice, "Wallet", "", "", status, "", testImage)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Error("expected nil for missing item")
	}
}

func TestListItemsDefaultHidesResolved(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	lost, _ := CreateItem(ctx, database, alice, "Lost Wallet", "", "", model.StatusLost, "", testImage)
	found, _ := CreateItem(ctx, database, alice, "Found Keys", "", "", model.StatusFound, "", testImage)
	resolved, _ := CreateItem(ctx, database, alice, "Old Phone", "", "", model.StatusLost, "", testImage)
	if _, err := ResolveItem(ctx, database, alice, resolved.ID); err != nil {
		t.Fatalf("ResolveItem: %v", err)
	}

	items, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 open items, got %d", len(items))
	}
	for _, item := range items {
		if !model.OpenStatus(item.Status) {
			t.Errorf("default listing contains resolved item %q (%s)", item.Title, item.Status)
		}
	}

	// Newest first: found was posted after lost.
	if items[0].ID != found.ID || items[1].ID != lost.ID {
		t.Errorf("expected newest-first order [%d %d], got [%d %d]", found.ID, lost.ID, items[0].ID, items[1].ID)
	}
}

func TestListItemsStatusFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	CreateItem(ctx, database, alice, "Lost Wallet", "", "", model.StatusLost, "", testImage)
	CreateItem(ctx, database, alice, "Found Keys", "", "", model.StatusFound, "", testImage)
	resolved, _ := CreateItem(ctx, database, alice, "Found Phone", "", "", model.StatusFound, "", testImage)
	ResolveItem(ctx, database, alice, resolved.ID)

	foundOnly, err := ListItems(ctx, database, ItemFilter{Status: model.StatusFound})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(foundOnly) != 1 || foundOnly[0].Status != model.StatusFound {
		t.Errorf("expected exactly the one Found item, got %d items", len(foundOnly))
	}

	// Explicit status filters can surface resolved items.
	returned, err := ListItems(ctx, database, ItemFilter{Status: model.StatusReturned})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(returned) != 1 || returned[0].ID != resolved.ID {
		t.Errorf("expected the resolved item via explicit filter, got %d items", len(returned))
	}
}

func TestListItemsCategoryFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	CreateItem(ctx, database, alice, "Wallet", "", "Accessories", model.StatusLost, "", testImage)
	CreateItem(ctx, database, alice, "Laptop", "", "Electronics", model.StatusLost, "", testImage)

	items, err := ListItems(ctx, database, ItemFilter{Category: "Electronics"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Laptop" {
		t.Errorf("expected only the Electronics item, got %d items", len(items))
	}
}

func TestListItemsSearch(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	CreateItem(ctx, database, alice, "Wallet", "Brown leather", "", model.StatusLost, "", testImage)
	CreateItem(ctx, database, alice, "Keys", "Lost near the wallet shop", "", model.StatusLost, "", testImage)
	CreateItem(ctx, database, alice, "Umbrella", "Black", "", model.StatusFound, "", testImage)

	// Case-insensitive substring over title or description.
	items, err := ListItems(ctx, database, ItemFilter{Search: "wALL"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 matches for 'wALL', got %d", len(items))
	}

	none, err := ListItems(ctx, database, ItemFilter{Search: "purse"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected 0 matches for 'purse', got %d", len(none))
	}
}

func TestListItemsCombinedFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	CreateItem(ctx, database, alice, "Lost Wallet", "", "Accessories", model.StatusLost, "", testImage)
	CreateItem(ctx, database, alice, "Found Wallet", "", "Accessories", model.StatusFound, "", testImage)
	CreateItem(ctx, database, alice, "Found Wallet", "", "Electronics", model.StatusFound, "", testImage)

	items, err := ListItems(ctx, database, ItemFilter{
		Status:   model.StatusFound,
		Category: "Accessories",
		Search:   "wallet",
	})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item matching all filters, got %d", len(items))
	}
	if items[0].Status != model.StatusFound || items[0].Category != "Accessories" {
		t.Errorf("filters not AND-combined: got %+v", items[0])
	}
}

func TestListUserItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")
	bob := createTestUser(t, database, "Bob", "bob@example.com")

	CreateItem(ctx, database, alice, "Wallet", "", "", model.StatusLost, "", testImage)
	resolved, _ := CreateItem(ctx, database, alice, "Keys", "", "", model.StatusFound, "", testImage)
	ResolveItem(ctx, database, alice, resolved.ID)
	CreateItem(ctx, database, bob, "Umbrella", "", "", model.StatusLost, "", testImage)

	items, err := ListUserItems(ctx, database, alice)
	if err != nil {
		t.Fatalf("ListUserItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for alice (resolved included), got %d", len(items))
	}
	for _, item := range items {
		if item.UserID != alice {
			t.Errorf("listing contains another user's item: %+v", item)
		}
	}
	if items[0].Status != model.StatusReturned {
		t.Errorf("expected newest item first with its resolved status, got %q", items[0].Status)
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")
	bob := createTestUser(t, database, "Bob", "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Wallet", "Brown", "Accessories", model.StatusLost, "alice@example.com", testImage)

	// Non-owner update must fail and leave the item unchanged.
	err := UpdateItem(ctx, database, bob, item.ID, "Hacked", "", "", "")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got.Title != "Wallet" {
		t.Errorf("item changed by non-owner: %q", got.Title)
	}

	// Missing item looks identical to a foreign one.
	if err := UpdateItem(ctx, database, alice, 9999, "X", "", "", ""); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for missing item, got %v", err)
	}

	// Owner update succeeds, status untouched.
	if err := UpdateItem(ctx, database, alice, item.ID, "Wallet (updated)", "Dark brown", "Accessories", "call me"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	got, _ = GetItem(ctx, database, item.ID)
	if got.Title != "Wallet (updated)" || got.Description != "Dark brown" {
		t.Errorf("owner update not applied: %+v", got)
	}
	if got.Status != model.StatusLost {
		t.Errorf("update must not change status, got %q", got.Status)
	}
}

func TestDeleteItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")
	bob := createTestUser(t, database, "Bob", "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Wallet", "", "", model.StatusLost, "", testImage)

	if err := DeleteItem(ctx, database, bob, item.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	// Still listed after the rejected delete.
	items, _ := ListItems(ctx, database, ItemFilter{})
	if len(items) != 1 {
		t.Fatalf("expected item to survive non-owner delete, got %d items", len(items))
	}

	if err := DeleteItem(ctx, database, alice, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone after owner delete")
	}
}

func TestResolveItemTransitions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")

	lost, _ := CreateItem(ctx, database, alice, "Wallet", "", "", model.StatusLost, "", testImage)
	found, _ := CreateItem(ctx, database, alice, "Keys", "", "", model.StatusFound, "", testImage)

	status, err := ResolveItem(ctx, database, alice, lost.ID)
	if err != nil {
		t.Fatalf("ResolveItem(lost): %v", err)
	}
	if status != model.StatusRecovered {
		t.Errorf("expected Lost -> Recovered, got %q", status)
	}

	status, err = ResolveItem(ctx, database, alice, found.ID)
	if err != nil {
		t.Fatalf("ResolveItem(found): %v", err)
	}
	if status != model.StatusReturned {
		t.Errorf("expected Found -> Returned, got %q", status)
	}

	// Resolving again is rejected, the status stays terminal.
	if _, err := ResolveItem(ctx, database, alice, lost.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	got, _ := GetItem(ctx, database, lost.ID)
	if got.Status != model.StatusRecovered {
		t.Errorf("status changed by rejected resolve: %q", got.Status)
	}
}

func TestResolveItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "Alice", "alice@example.com")
	bob := createTestUser(t, database, "Bob", "bob@example.com")

	item, _ := CreateItem(ctx, database, alice, "Wallet", "", "", model.StatusLost, "", testImage)

	if _, err := ResolveItem(ctx, database, bob, item.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got.Status != model.StatusLost {
		t.Errorf("status changed by non-owner resolve: %q", got.Status)
	}
}
