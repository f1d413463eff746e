package prescriptions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amardoctor/agi"
	"amardoctor/globals"
	"amardoctor/models"
	"amardoctor/state"
	"amardoctor/store"
)

// fakeAI is a canned agi.Client.
type fakeAI struct {
	result *agi.PrescriptionResult
	err    error
}

func (f *fakeAI) GeneratePrescription(ctx context.Context, req agi.PrescriptionRequest) (*agi.PrescriptionResult, error) {
	return f.result, f.err
}

func (f *fakeAI) FindMedicineInfo(ctx context.Context, query, mode string) ([]agi.MedicineInfo, error) {
	return nil, f.err
}

func (f *fakeAI) MedicineGuide(ctx context.Context, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "ব্যবহারবিধি", nil
}

func setupHandler(t *testing.T, ai agi.Client) *Handler {
	t.Helper()
	mem := store.NewMemoryStore()
	app := state.New(mem)
	app.Load(context.Background())
	if _, err := app.Register(context.Background(), "u1", "Rahim", "x"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewHandler(app, NewHistory(mem), ai)
}

func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestGenerateArchivesPrescription(t *testing.T) {
	h := setupHandler(t, &fakeAI{result: &agi.PrescriptionResult{
		Diagnosis: "সাধারণ জ্বর",
		Medicines: []models.PrescribedMedicine{{NameEn: "Napa", Generic: "Paracetamol", Dosage: "1+1+1"}},
		Advice:    "পর্যাপ্ত বিশ্রাম নিন",
	}})

	body := `{"symptoms":["জ্বর"],"customSymptoms":"কাশি","bp":"120/80"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/prescriptions/generate", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	h.Generate(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var pres models.Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &pres); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pres.Diagnosis != "সাধারণ জ্বর" || pres.PatientName != "Rahim" {
		t.Fatalf("prescription = %+v", pres)
	}
	// custom symptoms folded into the stored symptom list
	if len(pres.Symptoms) != 2 || pres.Symptoms[1] != "কাশি" {
		t.Fatalf("symptoms = %v", pres.Symptoms)
	}

	got := h.History.For(context.Background(), "u1")
	if len(got) != 1 || got[0].ID != pres.ID {
		t.Fatalf("archive = %+v", got)
	}
}

func TestGenerateFailureLeavesHistoryUntouched(t *testing.T) {
	h := setupHandler(t, &fakeAI{err: errors.New("model unavailable")})

	body := `{"symptoms":["জ্বর"]}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/prescriptions/generate", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	h.Generate(rec, req, nil)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if got := h.History.For(context.Background(), "u1"); len(got) != 0 {
		t.Fatalf("failed generation archived: %+v", got)
	}
}

func TestGenerateRequiresSymptoms(t *testing.T) {
	h := setupHandler(t, &fakeAI{})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/prescriptions/generate", strings.NewReader(`{}`)), "u1")
	rec := httptest.NewRecorder()
	h.Generate(rec, req, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMedicineGuideDegradesToNotFound(t *testing.T) {
	h := setupHandler(t, &fakeAI{err: errors.New("model unavailable")})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/medicines/guide?name=Napa", nil), "u1")
	rec := httptest.NewRecorder()
	h.MedicineGuide(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Guide string `json:"guide"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Guide != agi.GuideNotFound {
		t.Fatalf("guide = %q, want the fixed not-found string", out.Guide)
	}
}

func TestHistorySummary(t *testing.T) {
	if got := historySummary(nil); got != "None" {
		t.Fatalf("empty summary = %q", got)
	}
	got := historySummary([]models.Prescription{
		{Date: "2026-02-01", Diagnosis: "জ্বর"},
		{Date: "2026-01-15", Diagnosis: "গ্যাস্ট্রিক"},
	})
	want := "2026-02-01: জ্বর; 2026-01-15: গ্যাস্ট্রিক"
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestComposeHistory(t *testing.T) {
	got := composeHistory(
		[]models.Prescription{{Date: "2026-02-01", Diagnosis: "জ্বর"}},
		[]string{"ডায়াবেটিস"}, "মাইগ্রেন", "Metformin", "CBC", "normal")
	want := "Chronic conditions: ডায়াবেটিস, মাইগ্রেন. " +
		"Current medicines: Metformin. " +
		"Recent tests: CBC (result: normal). " +
		"Previous prescriptions: 2026-02-01: জ্বর"
	if got != want {
		t.Fatalf("history = %q, want %q", got, want)
	}

	// a blank intake still carries the prior summary
	if got := composeHistory(nil, nil, "", "", "", ""); got != "Previous prescriptions: None" {
		t.Fatalf("empty intake history = %q", got)
	}
}
