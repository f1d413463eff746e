package pricelist

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

// List returns the full price list. The optional ?q= filters by substring
// over brand and generic names, case-insensitive.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if q := r.URL.Query().Get("q"); q != "" {
		utils.RespondWithJSON(w, http.StatusOK, h.App.SearchPriceList(q))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.App.PriceList())
}

// Add appends a new price-list entry. Admin only.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	med, err := h.App.AddMedicine(r.Context(), input)
	if err != nil {
		if errors.Is(err, state.ErrValidation) {
			http.Error(w, "ঔষধের নাম ও দাম দিন", http.StatusBadRequest)
			return
		}
		log.Printf("addMedicine: %v", err)
		http.Error(w, "Failed to add medicine", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, med)
}

// Update edits an entry in place; the id never changes. Admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	med, err := h.App.UpdateMedicine(r.Context(), ps.ByName("id"), input)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "Medicine not found", http.StatusNotFound)
			return
		}
		log.Printf("updateMedicine: %v", err)
		http.Error(w, "Failed to update medicine", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, med)
}

// Remove deletes an entry. Admin only.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.App.RemoveMedicine(r.Context(), ps.ByName("id")); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "Medicine not found", http.StatusNotFound)
			return
		}
		log.Printf("removeMedicine: %v", err)
		http.Error(w, "Failed to remove medicine", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
