package prescriptions

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"amardoctor/agi"
	"amardoctor/globals"
	"amardoctor/models"
	"amardoctor/state"
	"amardoctor/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	App     *state.App
	History *History
	AI      agi.Client
}

func NewHandler(app *state.App, history *History, ai agi.Client) *Handler {
	return &Handler{App: app, History: history, AI: ai}
}

func actorID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

// Generate runs the full consultation flow: compose the patient summary with
// prior history, ask the AI collaborator, merge the result with the intake
// and archive it. A collaborator failure leaves the archive untouched and
// maps to a retryable 502.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Symptoms       []string `json:"symptoms"`
		CustomSymptoms string   `json:"customSymptoms"`
		Diseases       []string `json:"diseases"`
		CustomDisease  string   `json:"customDisease"`
		PastMedicines  string   `json:"pastMedicines"`
		Tests          string   `json:"tests"`
		TestResult     string   `json:"testResult"`
		BP             string   `json:"bp"`
		Sugar          string   `json:"sugar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if len(input.Symptoms) == 0 && strings.TrimSpace(input.CustomSymptoms) == "" {
		http.Error(w, "অন্তত একটি সমস্যা নির্বাচন করুন", http.StatusBadRequest)
		return
	}

	user, ok := h.App.UserByID(actorID(r))
	if !ok {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	prior := h.History.For(r.Context(), user.ID)
	history := composeHistory(prior, input.Diseases, input.CustomDisease,
		input.PastMedicines, input.Tests, input.TestResult)
	result, err := h.AI.GeneratePrescription(r.Context(), agi.PrescriptionRequest{
		Name:           user.Name,
		Age:            user.Age,
		Gender:         user.Gender,
		Symptoms:       input.Symptoms,
		CustomSymptoms: input.CustomSymptoms,
		History:        history,
		BP:             input.BP,
		Sugar:          input.Sugar,
	})
	if err != nil {
		http.Error(w, "প্রেসক্রিপশন তৈরি ব্যর্থ হয়েছে। আবার চেষ্টা করুন।", http.StatusBadGateway)
		return
	}

	symptoms := input.Symptoms
	if s := strings.TrimSpace(input.CustomSymptoms); s != "" {
		symptoms = append(symptoms, s)
	}
	pres := models.Prescription{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Date:        time.Now().Format("2006-01-02"),
		PatientName: user.Name,
		Age:         user.Age,
		Gender:      user.Gender,
		BP:          input.BP,
		Diabetes:    input.Sugar,
		Symptoms:    symptoms,
		Diagnosis:   result.Diagnosis,
		Medicines:   result.Medicines,
		Advice:      result.Advice,
		Precautions: result.Precautions,
	}

	if _, err := h.History.Append(r.Context(), user.ID, pres); err != nil {
		log.Printf("prescriptions: archive failed: %v", err)
		http.Error(w, "Failed to save prescription", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, pres)
}

// ListHistory returns the caller's archived prescriptions, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.History.For(r.Context(), actorID(r)))
}

// SearchMedicines asks the collaborator for brand or generic alternatives.
func (h *Handler) SearchMedicines(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "Missing query", http.StatusBadRequest)
		return
	}
	results, err := h.AI.FindMedicineInfo(r.Context(), query, r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "অনুসন্ধান ব্যর্থ হয়েছে। আবার চেষ্টা করুন।", http.StatusBadGateway)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// MedicineGuide fetches a Bengali usage guide. Lookup failures degrade to
// the fixed not-found string rather than an error status.
func (h *Handler) MedicineGuide(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "Missing name", http.StatusBadRequest)
		return
	}
	guide, err := h.AI.MedicineGuide(r.Context(), name)
	if err != nil || strings.TrimSpace(guide) == "" {
		guide = agi.GuideNotFound
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"guide": guide})
}

// historySummary flattens prior prescriptions into the one-line summary the
// collaborator prompt expects.
func historySummary(prior []models.Prescription) string {
	if len(prior) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(prior))
	for _, p := range prior {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Date, p.Diagnosis))
	}
	return strings.Join(parts, "; ")
}

// composeHistory consolidates the intake's medical background with the
// prior-prescription summary into the single history string the prompt
// carries.
func composeHistory(prior []models.Prescription, diseases []string, customDisease, pastMedicines, tests, testResult string) string {
	var parts []string
	conditions := append([]string(nil), diseases...)
	if s := strings.TrimSpace(customDisease); s != "" {
		conditions = append(conditions, s)
	}
	if len(conditions) > 0 {
		parts = append(parts, "Chronic conditions: "+strings.Join(conditions, ", "))
	}
	if s := strings.TrimSpace(pastMedicines); s != "" {
		parts = append(parts, "Current medicines: "+s)
	}
	if s := strings.TrimSpace(tests); s != "" {
		line := "Recent tests: " + s
		if r := strings.TrimSpace(testResult); r != "" {
			line += " (result: " + r + ")"
		}
		parts = append(parts, line)
	}
	parts = append(parts, "Previous prescriptions: "+historySummary(prior))
	return strings.Join(parts, ". ")
}
