package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

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

// ListUsers returns every registered patient, passwords stripped.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users := h.App.Users()
	for i := range users {
		users[i].Password = ""
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// SetBlocked blocks or unblocks a patient. A blocked patient keeps their
// data but cannot log in.
func (h *Handler) SetBlocked(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Blocked bool `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	user, err := h.App.SetBlocked(r.Context(), ps.ByName("id"), input.Blocked)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("setBlocked: %v", err)
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}
