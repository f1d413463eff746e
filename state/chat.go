package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amardoctor/models"

	"github.com/google/uuid"
)

// SendMessage appends a chat message between a patient and the admin and
// notifies the recipient. One endpoint is always the admin actor.
func (a *App) SendMessage(ctx context.Context, senderID, receiverID, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, fmt.Errorf("%w: message text is required", ErrValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
	}
	a.messages = append(a.messages, msg)
	if err := a.persist(ctx, KeyMessages, a.messages); err != nil {
		return models.Message{}, err
	}

	if senderID == adminRecipient {
		a.emitLocked(ctx, "এডমিন আপনাকে একটি মেসেজ পাঠিয়েছেন।", receiverID)
	} else {
		name := senderID
		for _, u := range a.users {
			if u.ID == senderID {
				name = u.Name
				break
			}
		}
		a.emitLocked(ctx, fmt.Sprintf("ইউজার %s একটি নতুন মেসেজ পাঠিয়েছেন।", name), adminRecipient)
	}
	return msg, nil
}

// ThreadFor returns the chat thread involving the given patient in append
// order, oldest first. Messages are chronological, unlike orders and
// notifications which are kept newest-first.
func (a *App) ThreadFor(userID string) []models.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.Message
	for _, m := range a.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

// ChatRoster returns the users that appear at either end of any message,
// joined against the Users collection. A patient who never messaged is
// absent.
func (a *App) ChatRoster() []models.User {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make(map[string]bool)
	for _, m := range a.messages {
		if m.SenderID == adminRecipient {
			ids[m.ReceiverID] = true
		} else {
			ids[m.SenderID] = true
		}
	}

	var out []models.User
	for _, u := range a.users {
		if ids[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
