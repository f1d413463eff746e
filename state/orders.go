package state

import (
	"context"
	"fmt"
	"time"

	"amardoctor/models"

	"github.com/google/uuid"
)

// maxOrdersPerPatient is the per-patient retention cap: submitting a sixth
// order silently evicts that patient's oldest. Other patients' orders are
// never touched.
const maxOrdersPerPatient = 5

// defaultAdminReply is the canned reply stored when the admin sends one
// without custom text.
const defaultAdminReply = "অর্ডার প্রসেস করা হয়েছে। ইনভয়েস চেক করুন।"

// SubmitOrder converts the user's draft cart into a pending order: prepends
// it to the Orders collection, notifies the admin, and clears the cart.
func (a *App) SubmitOrder(ctx context.Context, user models.User, address, phone, note string) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.carts[user.ID]
	if len(items) == 0 {
		return models.Order{}, fmt.Errorf("%w: draft cart is empty", ErrValidation)
	}

	order := models.Order{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		UserName:   user.Name,
		Items:      append([]models.OrderItem(nil), items...),
		TotalPrice: orderTotal(items),
		Address:    address,
		Phone:      phone,
		Note:       note,
		Status:     models.OrderPending,
		Timestamp:  time.Now().UnixMilli(),
	}

	a.orders = append([]models.Order{order}, a.orders...)
	a.trimOrdersLocked(user.ID)
	if err := a.persist(ctx, KeyOrders, a.orders); err != nil {
		return models.Order{}, err
	}

	delete(a.carts, user.ID)
	a.emitLocked(ctx, fmt.Sprintf("নতুন ঔষধের অর্ডার: %s", user.Name), adminRecipient)
	return order, nil
}

// trimOrdersLocked enforces the per-patient cap, keeping the newest entries
// for userID and everything belonging to other patients.
func (a *App) trimOrdersLocked(userID string) {
	kept := a.orders[:0]
	count := 0
	for _, o := range a.orders {
		if o.UserID == userID {
			if count >= maxOrdersPerPatient {
				continue
			}
			count++
		}
		kept = append(kept, o)
	}
	a.orders = kept
}

// OrdersFor returns the patient-visible slice: the user's orders, newest
// first, capped at the retention limit.
func (a *App) OrdersFor(userID string) []models.Order {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.Order
	for _, o := range a.orders {
		if o.UserID == userID {
			out = append(out, o)
			if len(out) == maxOrdersPerPatient {
				break
			}
		}
	}
	return out
}

// AllOrders returns the full collection, newest first. Admin view.
func (a *App) AllOrders() []models.Order {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Order, len(a.orders))
	copy(out, a.orders)
	return out
}

// OrderByID looks up one order.
func (a *App) OrderByID(id string) (models.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// StageItemPrice records a pending per-item price override. The order itself
// is not mutated until ReplyOrder applies the staged values.
func (a *App) StageItemPrice(orderID string, index int, price string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var order *models.Order
	for i := range a.orders {
		if a.orders[i].ID == orderID {
			order = &a.orders[i]
			break
		}
	}
	if order == nil {
		return fmt.Errorf("%w: order %q", ErrNotFound, orderID)
	}
	if index < 0 || index >= len(order.Items) {
		return fmt.Errorf("%w: item %d of order %q", ErrNotFound, index, orderID)
	}

	staged := a.staged[orderID]
	if staged == nil {
		staged = make([]string, len(order.Items))
	}
	staged[index] = price
	a.staged[orderID] = staged
	return nil
}

// ReplyOrder applies any staged price overrides (falling back to each item's
// existing price), recomputes the total, marks the order replied, stores the
// reply text (canned default when blank) and notifies the owning patient.
// Replying to an order that is no longer pending is rejected.
func (a *App) ReplyOrder(ctx context.Context, orderID, replyText string) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := -1
	for i := range a.orders {
		if a.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Order{}, fmt.Errorf("%w: order %q", ErrNotFound, orderID)
	}
	order := a.orders[idx]
	if order.Status != models.OrderPending {
		return models.Order{}, fmt.Errorf("%w: order %q is %s", ErrInvalidState, orderID, order.Status)
	}

	staged := a.staged[orderID]
	items := append([]models.OrderItem(nil), order.Items...)
	for i := range items {
		if i < len(staged) && staged[i] != "" {
			items[i].PricePerUnit = staged[i]
		}
	}

	if replyText == "" {
		replyText = defaultAdminReply
	}

	order.Items = items
	order.TotalPrice = orderTotal(items)
	order.Status = models.OrderReplied
	order.AdminReply = replyText
	a.orders[idx] = order

	if err := a.persist(ctx, KeyOrders, a.orders); err != nil {
		return models.Order{}, err
	}
	delete(a.staged, orderID)

	a.emitLocked(ctx,
		fmt.Sprintf("আপনার অর্ডারে এডমিন রিপ্লাই দিয়েছেন। আইডি: #%s", shortID(order.ID)), order.UserID)
	return order, nil
}

// RemoveOrder deletes an order unconditionally. No notification is emitted.
func (a *App) RemoveOrder(ctx context.Context, orderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, o := range a.orders {
		if o.ID == orderID {
			a.orders = append(a.orders[:i], a.orders[i+1:]...)
			delete(a.staged, orderID)
			return a.persist(ctx, KeyOrders, a.orders)
		}
	}
	return fmt.Errorf("%w: order %q", ErrNotFound, orderID)
}
