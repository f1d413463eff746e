package state

import (
	"context"
	"testing"
)

func TestNotificationsNewestFirstAndScoped(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	app.Register(ctx, "u1", "Rahim", "x")

	// one admin notification per submitted order
	app.AddCartItem("u1", "Napa", "2")
	first, _ := app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", "")
	app.AddCartItem("u1", "Seclo", "7")
	if _, err := app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", ""); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	admin := app.NotificationsFor("admin")
	if len(admin) != 2 {
		t.Fatalf("admin inbox = %d, want 2", len(admin))
	}
	if admin[0].Timestamp < admin[1].Timestamp {
		t.Fatal("inbox not newest first")
	}

	// replying notifies only the patient
	if _, err := app.ReplyOrder(ctx, first.ID, "ok"); err != nil {
		t.Fatalf("ReplyOrder: %v", err)
	}
	if got := len(app.NotificationsFor("u1")); got != 1 {
		t.Fatalf("u1 inbox = %d, want 1", got)
	}
	if got := len(app.NotificationsFor("admin")); got != 2 {
		t.Fatalf("admin inbox grew to %d on reply", got)
	}
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	app.AddCartItem("u1", "Napa", "2")
	app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", "")
	app.AddCartItem("u2", "Seclo", "7")
	app.SubmitOrder(ctx, testUser("u2", "Karim"), "", "", "")

	if got := app.UnreadCount("admin"); got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}

	if err := app.MarkAllRead(ctx, "admin"); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if got := app.UnreadCount("admin"); got != 0 {
		t.Fatalf("unread after mark = %d, want 0", got)
	}

	// a fresh notification is unread again; the count is always derived
	app.AddCartItem("u1", "More", "1")
	app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", "")
	if got := app.UnreadCount("admin"); got != 1 {
		t.Fatalf("unread after new event = %d, want 1", got)
	}

	// marking one actor's inbox leaves others alone
	app.AddCartItem("u1", "Again", "1")
	order, _ := app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", "")
	app.ReplyOrder(ctx, order.ID, "ok")
	app.MarkAllRead(ctx, "admin")
	if got := app.UnreadCount("u1"); got != 1 {
		t.Fatalf("u1 unread = %d, want 1", got)
	}
}

func TestMarkAllReadOnEmptyInbox(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.MarkAllRead(context.Background(), "u1"); err != nil {
		t.Fatalf("MarkAllRead on empty inbox: %v", err)
	}
}

func TestToasterSeesEmittedNotifications(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	var gotTo, gotMsg string
	app.SetToaster(func(to, message string) {
		gotTo, gotMsg = to, message
	})

	app.AddCartItem("u1", "Napa", "2")
	app.SubmitOrder(ctx, testUser("u1", "Rahim"), "", "", "")

	if gotTo != "admin" {
		t.Fatalf("toast recipient = %q, want admin", gotTo)
	}
	if gotMsg != "নতুন ঔষধের অর্ডার: Rahim" {
		t.Fatalf("toast message = %q", gotMsg)
	}
}
