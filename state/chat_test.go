package state

import (
	"context"
	"errors"
	"testing"
)

func TestChatThreadIsChronological(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	app.Register(ctx, "u1", "Rahim", "x")

	app.SendMessage(ctx, "u1", "admin", "হ্যালো ডাক্তার")
	app.SendMessage(ctx, "admin", "u1", "বলুন কী সমস্যা")
	app.SendMessage(ctx, "u1", "admin", "মাথা ব্যথা")

	thread := app.ThreadFor("u1")
	if len(thread) != 3 {
		t.Fatalf("thread = %d messages, want 3", len(thread))
	}
	// oldest first, unlike orders and notifications
	if thread[0].Text != "হ্যালো ডাক্তার" || thread[2].Text != "মাথা ব্যথা" {
		t.Fatalf("thread order wrong: %q .. %q", thread[0].Text, thread[2].Text)
	}
}

func TestChatNotifiesTheOtherEnd(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	app.Register(ctx, "u1", "Rahim", "x")

	app.SendMessage(ctx, "u1", "admin", "হ্যালো")
	admin := app.NotificationsFor("admin")
	if len(admin) != 1 || admin[0].Message != "ইউজার Rahim একটি নতুন মেসেজ পাঠিয়েছেন।" {
		t.Fatalf("admin notification = %+v", admin)
	}

	app.SendMessage(ctx, "admin", "u1", "বলুন")
	mine := app.NotificationsFor("u1")
	if len(mine) != 1 || mine[0].Message != "এডমিন আপনাকে একটি মেসেজ পাঠিয়েছেন।" {
		t.Fatalf("patient notification = %+v", mine)
	}
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	app, _ := newTestApp(t)
	if _, err := app.SendMessage(context.Background(), "u1", "admin", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank text: got %v, want ErrValidation", err)
	}
}

func TestChatRoster(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	app.Register(ctx, "u1", "Rahim", "x")
	app.Register(ctx, "u2", "Karim", "x")
	app.Register(ctx, "u3", "Salma", "x")

	app.SendMessage(ctx, "u1", "admin", "হ্যালো")
	app.SendMessage(ctx, "admin", "u2", "আপনার রিপোর্ট এসেছে")

	roster := app.ChatRoster()
	if len(roster) != 2 {
		t.Fatalf("roster = %d, want 2", len(roster))
	}
	seen := map[string]bool{}
	for _, u := range roster {
		seen[u.ID] = true
	}
	if !seen["u1"] || !seen["u2"] || seen["u3"] {
		t.Fatalf("roster ids = %v", seen)
	}
}

func TestThreadsAreIsolatedPerPatient(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	app.SendMessage(ctx, "u1", "admin", "আমার প্রশ্ন")
	app.SendMessage(ctx, "admin", "u2", "অন্য উত্তর")

	if got := len(app.ThreadFor("u1")); got != 1 {
		t.Fatalf("u1 thread = %d, want 1", got)
	}
	if got := len(app.ThreadFor("u2")); got != 1 {
		t.Fatalf("u2 thread = %d, want 1", got)
	}
}
