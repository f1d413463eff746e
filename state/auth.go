package state

import (
	"context"
	"fmt"

	"amardoctor/models"
)

// Register creates a patient account and returns it. The id must not collide
// with any existing user; on collision nothing is mutated.
func (a *App) Register(ctx context.Context, id, name, password string) (models.User, error) {
	if id == "" || name == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: id, name and password are required", ErrValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, u := range a.users {
		if u.ID == id {
			return models.User{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}

	user := models.User{
		ID:       id,
		Name:     name,
		Password: password,
		Theme:    models.ThemeBlue,
	}
	a.users = append(a.users, user)
	if err := a.persist(ctx, KeyUsers, a.users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login matches (id, password) exactly against the Users collection. A
// blocked account never establishes a session, correct password or not.
func (a *App) Login(ctx context.Context, id, password string) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, u := range a.users {
		if u.ID == id && u.Password == password {
			if u.IsBlocked {
				return models.User{}, ErrBlockedAccount
			}
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Users returns a snapshot of the Users collection.
func (a *App) Users() []models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.User, len(a.users))
	copy(out, a.users)
	return out
}

// UserByID looks a patient up by id.
func (a *App) UserByID(id string) (models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UpdateProfile applies the owner-editable fields of a patient's profile.
// Identity, password and the blocked flag are untouched here.
func (a *App) UpdateProfile(ctx context.Context, userID string, patch models.User) (models.User, error) {
	if patch.Theme != "" && !models.ValidTheme(patch.Theme) {
		return models.User{}, fmt.Errorf("%w: unknown theme %q", ErrValidation, patch.Theme)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i, u := range a.users {
		if u.ID != userID {
			continue
		}
		if patch.Name != "" {
			u.Name = patch.Name
		}
		u.Age = patch.Age
		u.Gender = patch.Gender
		u.BloodGroup = patch.BloodGroup
		u.Address = patch.Address
		u.Mobile = patch.Mobile
		if patch.Photo != "" {
			u.Photo = patch.Photo
		}
		if patch.Theme != "" {
			u.Theme = patch.Theme
		}
		a.users[i] = u
		if err := a.persist(ctx, KeyUsers, a.users); err != nil {
			return models.User{}, err
		}
		return u, nil
	}
	return models.User{}, fmt.Errorf("%w: user %q", ErrNotFound, userID)
}

// SetBlocked toggles the admin-owned blocked flag on a patient.
func (a *App) SetBlocked(ctx context.Context, userID string, blocked bool) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, u := range a.users {
		if u.ID == userID {
			a.users[i].IsBlocked = blocked
			if err := a.persist(ctx, KeyUsers, a.users); err != nil {
				return models.User{}, err
			}
			return a.users[i], nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user %q", ErrNotFound, userID)
}
