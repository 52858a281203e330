package handlers

import (
	"crypto/rand"
	"encoding/hex"

	"backend/internal/models"
)

// mergeCartItem folds a requested line into the item list: an existing
// (productId, size) line has its quantity incremented by the requested
// amount, otherwise a new line is appended. The invariant of at most one
// line per (productId, size) pair lives here, not in the store.
func mergeCartItem(items []models.CartItem, productID, size string, quantity int) ([]models.CartItem, error) {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			items[i].Quantity += quantity
			return items, nil
		}
	}

	id, err := newLineItemID()
	if err != nil {
		return nil, err
	}
	return append(items, models.CartItem{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
	}), nil
}

// setItemQuantity overwrites the quantity of the line with the given id.
// The second return reports whether the line was found.
func setItemQuantity(items []models.CartItem, itemID string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

// removeItem drops the line with the given id. A missing line is not an
// error for the caller; remove is a no-op success in that case.
func removeItem(items []models.CartItem, itemID string) []models.CartItem {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID == itemID {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func newLineItemID() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
