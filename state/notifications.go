package state

import (
	"context"
	"time"

	"amardoctor/globals"
	"amardoctor/models"

	"github.com/google/uuid"
)

const adminRecipient = globals.AdminActor

// emitLocked appends an unread notification for the given actor, newest
// first, persists the collection and announces it to the toaster. Callers
// hold the lock.
func (a *App) emitLocked(ctx context.Context, message, to string) {
	n := models.AppNotification{
		ID:        uuid.NewString(),
		To:        to,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
	a.notifications = append([]models.AppNotification{n}, a.notifications...)
	a.persist(ctx, KeyNotifications, a.notifications)

	if a.toast != nil {
		a.toast(to, message)
	}
}

// NotificationsFor returns the actor's inbox, newest first.
func (a *App) NotificationsFor(actor string) []models.AppNotification {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.AppNotification
	for _, n := range a.notifications {
		if n.To == actor {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount is derived live from the collection on every call; it cannot
// drift from the source data.
func (a *App) UnreadCount(actor string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for _, n := range a.notifications {
		if n.To == actor && !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead flips read on every notification addressed to the actor.
// Entering the containing view clears the whole inbox at once; there are no
// per-item read receipts.
func (a *App) MarkAllRead(ctx context.Context, actor string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed := false
	for i, n := range a.notifications {
		if n.To == actor && !n.Read {
			a.notifications[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return a.persist(ctx, KeyNotifications, a.notifications)
}
