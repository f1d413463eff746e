package notifications

import (
	"log"
	"net/http"

	"amardoctor/globals"
	"amardoctor/state"
	"amardoctor/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	App *state.App
}

func NewHandler(app *state.App) *Handler {
	return &Handler{App: app}
}

func actorID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

// List returns the caller's notifications, newest first, with the live
// unread count.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := actorID(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"notifications": h.App.NotificationsFor(actor),
		"unreadCount":   h.App.UnreadCount(actor),
	})
}

// MarkAllRead flips every notification addressed to the caller to read.
// There is no per-notification variant.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.App.MarkAllRead(r.Context(), actorID(r)); err != nil {
		log.Printf("markAllRead: %v", err)
		http.Error(w, "Failed to mark notifications", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
