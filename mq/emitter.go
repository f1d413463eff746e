package mq

import (
	"context"
	"encoding/json"
	"log"

	"amardoctor/rdx"
)

// ToastEvent mirrors an emitted notification onto the Redis pub/sub channel
// so an attached consumer (a toast overlay, an ops tail) can display it.
// Delivery is best-effort; the notification itself is already durable.
type ToastEvent struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

const toastChannel = "toast-events"

// Emit publishes a toast event. Failures are logged and swallowed.
func Emit(ctx context.Context, event ToastEvent) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, toastChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}
