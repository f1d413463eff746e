package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"amardoctor/globals"
	"amardoctor/models"
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

// Get returns the caller's own record, password stripped.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := h.App.UserByID(actorID(r))
	if !ok {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// Update saves the caller's editable fields: demographics, contact, photo
// and theme. Id and block status are untouchable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch models.User
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	user, err := h.App.UpdateProfile(r.Context(), actorID(r), patch)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, state.ErrValidation):
			http.Error(w, "Invalid theme", http.StatusBadRequest)
		default:
			log.Printf("updateProfile: %v", err)
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		}
		return
	}
	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}
