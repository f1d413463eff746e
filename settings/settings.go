package settings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

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

// GetConfig returns the branding singleton. Every patient view reads it, so
// it sits on an authenticated but non-admin route.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.Config())
}

// UpdateConfig replaces the branding singleton wholesale. Admin only.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cfg models.AppConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.App.UpdateConfig(r.Context(), cfg); err != nil {
		if errors.Is(err, state.ErrValidation) {
			http.Error(w, "Invalid theme", http.StatusBadRequest)
			return
		}
		log.Printf("updateConfig: %v", err)
		http.Error(w, "Failed to update config", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.App.Config())
}
