package cart

import (
	"encoding/json"
	"errors"
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

// GetCart returns the caller's in-memory cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.Cart(actorID(r)))
}

// AddItem adds a price-list medicine to the cart. A line with the same name
// already in the cart gets its quantity bumped instead of a second line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		MedicineName string `json:"medicineName"`
		Price        string `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.MedicineName == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	h.App.AddCartItem(actorID(r), input.MedicineName, input.Price)
	utils.RespondWithJSON(w, http.StatusOK, h.App.Cart(actorID(r)))
}

// AddManual adds a free-text line. Unlike AddItem it never merges with an
// existing line, even for an identical name.
func (h *Handler) AddManual(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.App.AddManualCartItem(actorID(r), input.Name, input.Quantity); err != nil {
		if errors.Is(err, state.ErrValidation) {
			http.Error(w, "ঔষধের নাম লিখুন", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to add item", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.App.Cart(actorID(r)))
}

// UpdateQuantity applies a +1/-1 delta to the line at index; quantity never
// drops below one.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Index int `json:"index"`
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.App.UpdateCartQuantity(actorID(r), input.Index, input.Delta); err != nil {
		http.Error(w, "Invalid cart index", http.StatusBadRequest)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.App.Cart(actorID(r)))
}

// RemoveItem deletes the line at index.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.App.RemoveCartItem(actorID(r), input.Index); err != nil {
		http.Error(w, "Invalid cart index", http.StatusBadRequest)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.App.Cart(actorID(r)))
}
