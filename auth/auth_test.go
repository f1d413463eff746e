package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amardoctor/middleware"
	"amardoctor/state"
	"amardoctor/store"

	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) *Handler {
	t.Helper()
	app := state.New(store.NewMemoryStore())
	app.Load(context.Background())
	return NewHandler(app)
}

func TestRegisterIssuesValidToken(t *testing.T) {
	h := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"id":"u1","name":"Rahim","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Token   string `json:"token"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.IsAdmin {
		t.Fatal("patient token marked admin")
	}

	claims, err := middleware.ValidateJWT("Bearer " + resp.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "Rahim" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	h := setup(t)
	body := `{"id":"u1","name":"Rahim","password":"secret"}`

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register = %d, want 409", rec.Code)
	}
}

func TestLoginRejectsBlockedAccount(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	if _, err := h.App.Register(ctx, "u1", "Rahim", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.App.SetBlocked(ctx, "u1", true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"id":"u1","password":"secret"}`)), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("blocked login = %d, want 403", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := setup(t)
	if _, err := h.App.Register(context.Background(), "u1", "Rahim", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"id":"u1","password":"nope"}`)), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password = %d, want 401", rec.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	h := setup(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	t.Setenv("ADMIN_ID", "boss")
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))

	rec := httptest.NewRecorder()
	h.AdminLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/admin-login",
		strings.NewReader(`{"id":"boss","password":"hunter2"}`)), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Token   string `json:"token"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Data.IsAdmin {
		t.Fatal("admin token not marked admin")
	}
	claims, err := middleware.ValidateJWT("Bearer " + resp.Data.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if len(claims.Role) != 1 || claims.Role[0] != "admin" {
		t.Fatalf("roles = %v", claims.Role)
	}

	rec = httptest.NewRecorder()
	h.AdminLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/admin-login",
		strings.NewReader(`{"id":"boss","password":"wrong"}`)), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad admin password = %d, want 401", rec.Code)
	}
}

func TestAdminLoginUnconfigured(t *testing.T) {
	h := setup(t)
	t.Setenv("ADMIN_ID", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	rec := httptest.NewRecorder()
	h.AdminLogin(rec, httptest.NewRequest(http.MethodPost, "/api/auth/admin-login",
		strings.NewReader(`{"id":"admin","password":"2"}`)), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unconfigured admin login = %d, want 401", rec.Code)
	}
}
