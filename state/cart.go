package state

import (
	"fmt"
	"strconv"
	"strings"

	"amardoctor/models"
)

// Cart returns a snapshot of the user's draft cart.
func (a *App) Cart(userID string) []models.OrderItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.OrderItem, len(a.carts[userID]))
	copy(out, a.carts[userID])
	return out
}

// AddCartItem adds one unit of a medicine to the draft cart. A line with the
// same medicine name is incremented rather than duplicated; a new line gets
// quantity 1 and the price hint, defaulting to "0". Touches nothing outside
// the cart.
func (a *App) AddCartItem(userID, medicineName, priceHint string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.carts[userID]
	for i, it := range items {
		if it.MedicineName == medicineName {
			qty, _ := strconv.Atoi(it.Quantity)
			items[i].Quantity = strconv.Itoa(qty + 1)
			a.carts[userID] = items
			return
		}
	}
	if priceHint == "" {
		priceHint = "0"
	}
	a.carts[userID] = append(items, models.OrderItem{
		MedicineName: medicineName,
		Quantity:     "1",
		PricePerUnit: priceHint,
	})
}

// AddManualCartItem appends a hand-entered line. The brand is matched
// case-insensitively against the price list to prefill the unit price,
// otherwise it goes in at 0. Manual entries are always new lines, never
// merged with an existing one.
func (a *App) AddManualCartItem(userID, name, quantity string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: medicine name is required", ErrValidation)
	}
	if quantity == "" {
		quantity = "1"
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	price := "0"
	for _, m := range a.priceList {
		if strings.EqualFold(m.BrandName, name) {
			price = m.Price
			break
		}
	}
	a.carts[userID] = append(a.carts[userID], models.OrderItem{
		MedicineName: name,
		Quantity:     quantity,
		PricePerUnit: price,
	})
	return nil
}

// UpdateCartQuantity adjusts a line's quantity by delta, clamped at 1.
func (a *App) UpdateCartQuantity(userID string, index, delta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.carts[userID]
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: cart line %d", ErrNotFound, index)
	}
	qty, _ := strconv.Atoi(items[index].Quantity)
	qty += delta
	if qty < 1 {
		qty = 1
	}
	items[index].Quantity = strconv.Itoa(qty)
	a.carts[userID] = items
	return nil
}

// RemoveCartItem drops a line from the draft cart.
func (a *App) RemoveCartItem(userID string, index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.carts[userID]
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: cart line %d", ErrNotFound, index)
	}
	a.carts[userID] = append(items[:index], items[index+1:]...)
	return nil
}
