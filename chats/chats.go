package chats

import (
	"encoding/json"
	"errors"
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

// Send posts a message from the caller. Patients always talk to the admin;
// the admin names the receiving patient in the body.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ReceiverID string `json:"receiverId"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	sender := actorID(r)
	receiver := input.ReceiverID
	if sender != globals.AdminActor {
		receiver = globals.AdminActor
	} else if receiver == "" {
		http.Error(w, "Missing receiver", http.StatusBadRequest)
		return
	}

	msg, err := h.App.SendMessage(r.Context(), sender, receiver, input.Text)
	if err != nil {
		if errors.Is(err, state.ErrValidation) {
			http.Error(w, "মেসেজ লিখুন", http.StatusBadRequest)
			return
		}
		log.Printf("sendMessage: %v", err)
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, msg)
}

// Thread returns the caller's conversation with the admin, oldest first.
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.ThreadFor(actorID(r)))
}

// ThreadWith returns the conversation with one patient. Admin only.
func (h *Handler) ThreadWith(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.ThreadFor(ps.ByName("userId")))
}

// Roster lists every patient with at least one message, for the admin inbox.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.ChatRoster())
}
