package state

import (
	"context"
	"fmt"

	"amardoctor/models"
)

// Config returns the branding singleton.
func (a *App) Config() models.AppConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// UpdateConfig replaces the branding singleton. Admin-only at the HTTP layer.
func (a *App) UpdateConfig(ctx context.Context, cfg models.AppConfig) error {
	if cfg.PrescriptionTheme != "" && !models.ValidTheme(cfg.PrescriptionTheme) {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, cfg.PrescriptionTheme)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = cfg
	return a.persist(ctx, KeyConfig, a.config)
}
