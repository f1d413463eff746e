package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"amardoctor/globals"
	"amardoctor/middleware"
	"amardoctor/models"
	"amardoctor/state"
	"amardoctor/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 12 * time.Hour

type Handler struct {
	App      *state.App
	validate *validator.Validate
}

func NewHandler(app *state.App) *Handler {
	return &Handler{App: app, validate: validator.New()}
}

type credentials struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required"`
}

// Register creates a patient account and logs it in immediately: the
// response carries a fresh session token alongside the user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil || input.Name == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	user, err := h.App.Register(r.Context(), input.ID, input.Name, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrDuplicateID):
			http.Error(w, "এই আইডি ইতিমধ্যেই ব্যবহার করা হয়েছে", http.StatusConflict)
		case errors.Is(err, state.ErrValidation):
			http.Error(w, "Missing required fields", http.StatusBadRequest)
		default:
			log.Printf("register: %v", err)
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	h.respondWithSession(w, http.StatusCreated, user, false)
}

// Login authenticates a patient by exact id/password match.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	user, err := h.App.Login(r.Context(), input.ID, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrBlockedAccount):
			http.Error(w, "আপনার অ্যাকাউন্টটি ব্লক করা হয়েছে", http.StatusForbidden)
		default:
			http.Error(w, "ভুল ইউজার আইডি অথবা পাসওয়ার্ড", http.StatusUnauthorized)
		}
		return
	}

	h.respondWithSession(w, http.StatusOK, user, false)
}

// AdminLogin accepts only the operator credential configured via
// ADMIN_ID / ADMIN_PASSWORD_HASH (bcrypt). With no hash configured every
// attempt fails.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	adminID := os.Getenv("ADMIN_ID")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminID == "" || adminHash == "" {
		log.Println("adminLogin: ADMIN_ID/ADMIN_PASSWORD_HASH not configured")
		http.Error(w, "ভুল এডমিন আইডি অথবা পাসওয়ার্ড", http.StatusUnauthorized)
		return
	}

	if input.ID != adminID ||
		bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(input.Password)) != nil {
		http.Error(w, "ভুল এডমিন আইডি অথবা পাসওয়ার্ড", http.StatusUnauthorized)
		return
	}

	h.respondWithSession(w, http.StatusOK, models.User{ID: globals.AdminActor, Name: "Admin"}, true)
}

func (h *Handler) respondWithSession(w http.ResponseWriter, status int, user models.User, isAdmin bool) {
	token, err := generateToken(user, isAdmin)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	payload := utils.M{
		"token":   token,
		"isAdmin": isAdmin,
	}
	if !isAdmin {
		user.Password = ""
		payload["user"] = user
	}
	utils.SendResponse(w, status, payload, "Login successful", nil)
}

func generateToken(user models.User, isAdmin bool) (string, error) {
	role := []string{"user"}
	if isAdmin {
		role = []string{globals.AdminActor}
	}
	claims := &middleware.Claims{
		Username: user.Name,
		UserID:   user.ID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
