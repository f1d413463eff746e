package prescriptions

import (
	"context"
	"errors"
	"log"

	"amardoctor/models"
	"amardoctor/store"
)

// maxHistory caps each patient's prescription history; appending a sixth
// entry evicts the oldest.
const maxHistory = 5

// History is the per-patient prescription archive. It owns a namespaced
// slice of the store, so one patient's history is unreachable from another
// patient's key by construction.
type History struct {
	store store.Store
}

// NewHistory wraps the application store, scoping every key under the
// per-patient prescription prefix.
func NewHistory(s store.Store) *History {
	return &History{store: store.Namespaced(s, "pres_")}
}

// For returns the patient's history, newest first. Missing or corrupted
// data reads as empty.
func (h *History) For(ctx context.Context, userID string) []models.Prescription {
	var list []models.Prescription
	err := h.store.Get(ctx, userID, &list)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("prescriptions: history for %q unreadable, treating as empty: %v", userID, err)
	}
	if list == nil {
		list = []models.Prescription{}
	}
	return list
}

// Append prepends a prescription, trims to the cap and persists. The stored
// history is returned.
func (h *History) Append(ctx context.Context, userID string, p models.Prescription) ([]models.Prescription, error) {
	list := append([]models.Prescription{p}, h.For(ctx, userID)...)
	if len(list) > maxHistory {
		list = list[:maxHistory]
	}
	if err := h.store.Put(ctx, userID, list); err != nil {
		return nil, err
	}
	return list, nil
}
