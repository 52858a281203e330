package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestMergeCartItemIncrementsExistingLine(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: "P1", Size: "M", Quantity: 2},
		{ID: "b", ProductID: "P2", Size: "L", Quantity: 1},
	}

	merged, err := mergeCartItem(items, "P1", "M", 3)
	if err != nil {
		t.Fatalf("mergeCartItem returned error: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(merged))
	}
	if merged[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", merged[0].Quantity)
	}
	if merged[1].Quantity != 1 {
		t.Fatalf("other lines must be untouched, got quantity %d", merged[1].Quantity)
	}
}

func TestMergeCartItemAppendsNewLine(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: "P1", Size: "M", Quantity: 2},
	}

	// Same product, different size: a new line, not a merge.
	merged, err := mergeCartItem(items, "P1", "L", 1)
	if err != nil {
		t.Fatalf("mergeCartItem returned error: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(merged))
	}
	if merged[0].Quantity != 2 {
		t.Fatalf("existing line must be untouched, got quantity %d", merged[0].Quantity)
	}
	if merged[1].ProductID != "P1" || merged[1].Size != "L" || merged[1].Quantity != 1 {
		t.Fatalf("unexpected appended line: %+v", merged[1])
	}
	if merged[1].ID == "" || merged[1].ID == merged[0].ID {
		t.Fatalf("appended line needs a fresh id, got %q", merged[1].ID)
	}
}

func TestSetItemQuantityIsAbsoluteAndIdempotent(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: "P1", Size: "M", Quantity: 2},
	}

	once, found := setItemQuantity(items, "a", 7)
	if !found {
		t.Fatal("expected item to be found")
	}
	twice, found := setItemQuantity(once, "a", 7)
	if !found {
		t.Fatal("expected item to be found on the second call")
	}
	if twice[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", twice[0].Quantity)
	}
}

func TestSetItemQuantityMissingItem(t *testing.T) {
	items := []models.CartItem{{ID: "a", ProductID: "P1", Size: "M", Quantity: 2}}
	if _, found := setItemQuantity(items, "zzz", 1); found {
		t.Fatal("expected missing item to report not found")
	}
}

func TestRemoveItemDropsOnlyTheMatchingLine(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: "P1", Size: "M", Quantity: 2},
		{ID: "b", ProductID: "P2", Size: "L", Quantity: 1},
	}

	kept := removeItem(items, "a")
	if len(kept) != 1 || kept[0].ID != "b" {
		t.Fatalf("unexpected result: %+v", kept)
	}

	// A missing line is a no-op, not an error.
	same := removeItem(kept, "zzz")
	if len(same) != 1 {
		t.Fatalf("expected no-op removal, got %+v", same)
	}
}
