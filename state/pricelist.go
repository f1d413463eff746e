package state

import (
	"context"
	"fmt"

	"amardoctor/models"
	"amardoctor/utils"
)

// PriceList returns a snapshot of the medicine catalogue.
func (a *App) PriceList() []models.Medicine {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Medicine, len(a.priceList))
	copy(out, a.priceList)
	return out
}

// SearchPriceList filters the catalogue by brand or generic name,
// case-insensitive substring match.
func (a *App) SearchPriceList(query string) []models.Medicine {
	if query == "" {
		return a.PriceList()
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []models.Medicine
	for _, m := range a.priceList {
		if utils.ContainsIgnoreCase(m.BrandName, query) ||
			utils.ContainsIgnoreCase(m.GenericName, query) {
			out = append(out, m)
		}
	}
	return out
}

// AddMedicine appends a catalogue entry with a time-based id.
func (a *App) AddMedicine(ctx context.Context, m models.Medicine) (models.Medicine, error) {
	if m.BrandName == "" || m.Price == "" {
		return models.Medicine{}, fmt.Errorf("%w: brand name and price are required", ErrValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	m.ID = timeID()
	a.priceList = append(a.priceList, m)
	if err := a.persist(ctx, KeyPriceList, a.priceList); err != nil {
		return models.Medicine{}, err
	}
	return m, nil
}

// UpdateMedicine replaces an entry in place; the id stays stable.
func (a *App) UpdateMedicine(ctx context.Context, id string, m models.Medicine) (models.Medicine, error) {
	if m.BrandName == "" || m.Price == "" {
		return models.Medicine{}, fmt.Errorf("%w: brand name and price are required", ErrValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i, existing := range a.priceList {
		if existing.ID == id {
			m.ID = id
			a.priceList[i] = m
			if err := a.persist(ctx, KeyPriceList, a.priceList); err != nil {
				return models.Medicine{}, err
			}
			return m, nil
		}
	}
	return models.Medicine{}, fmt.Errorf("%w: medicine %q", ErrNotFound, id)
}

// RemoveMedicine drops a catalogue entry.
func (a *App) RemoveMedicine(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, m := range a.priceList {
		if m.ID == id {
			a.priceList = append(a.priceList[:i], a.priceList[i+1:]...)
			return a.persist(ctx, KeyPriceList, a.priceList)
		}
	}
	return fmt.Errorf("%w: medicine %q", ErrNotFound, id)
}
