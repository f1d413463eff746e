// Package agi talks to the external AI collaborator. All three operations
// are plain request/response; any transport error, malformed payload or
// empty result is a recoverable failure the caller turns into a "try again"
// affordance. Nothing here retries automatically.
package agi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"amardoctor/models"
)

// GuideNotFound is returned whenever a medicine-guide lookup fails for any
// reason.
const GuideNotFound = "তথ্য পাওয়া যায়নি।"

// PrescriptionRequest is the patient summary handed to the model.
type PrescriptionRequest struct {
	Name           string
	Age            string
	Gender         string
	Symptoms       []string
	CustomSymptoms string
	History        string
	BP             string
	Sugar          string
}

// PrescriptionResult is the structured record the model must produce.
type PrescriptionResult struct {
	Diagnosis   string                      `json:"diagnosis"`
	Medicines   []models.PrescribedMedicine `json:"medicines"`
	Advice      string                      `json:"advice"`
	Precautions string                      `json:"precautions"`
}

// MedicineInfo is one alternative returned by a medicine search.
type MedicineInfo struct {
	BrandName   string `json:"brandName"`
	GenericName string `json:"genericName"`
	Company     string `json:"company"`
	Price       string `json:"price"`
}

// Client is the AI collaborator contract. Handlers depend on this interface
// so tests can substitute a fake.
type Client interface {
	GeneratePrescription(ctx context.Context, req PrescriptionRequest) (*PrescriptionResult, error)
	FindMedicineInfo(ctx context.Context, query, mode string) ([]MedicineInfo, error)
	MedicineGuide(ctx context.Context, name string) (string, error)
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewGeminiClient() *GeminiClient {
	base := os.Getenv("GEMINI_API_URL")
	if base == "" {
		base = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiClient{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: base,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// generateContent request/response envelopes, trimmed to the fields used.
type genRequest struct {
	Contents []genContent `json:"contents"`
	Config   *genConfig   `json:"generationConfig,omitempty"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []genPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate posts one prompt and returns the first candidate's text.
func (c *GeminiClient) generate(ctx context.Context, model, prompt string, jsonOut bool) (string, error) {
	req := genRequest{Contents: []genContent{{Parts: []genPart{{Text: prompt}}}}}
	if jsonOut {
		req.Config = &genConfig{ResponseMimeType: "application/json"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("agi: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("agi: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("agi: call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("agi: model returned %s", resp.Status)
	}

	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("agi: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("agi: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (c *GeminiClient) GeneratePrescription(ctx context.Context, req PrescriptionRequest) (*PrescriptionResult, error) {
	prompt := fmt.Sprintf(`Generate a professional medical prescription in a structured format:
Patient: %s, Age: %s, Gender: %s
Current Symptoms: %s %s
Medical History & Previous Conditions: %s
Vital Signs - BP: %s, Sugar: %s

Strict Output Requirements:
1. Language: Use Bengali for all advice, diagnosis, and purpose. Use English for brand names.
2. Medicine Format: keys nameEn, nameBn, generic, dosage, purpose.
3. Suggest 2-5 relevant medicines.
4. Provide a clear Diagnosis in Bengali under key "diagnosis".
5. Provide Lifestyle Advice in Bengali under key "advice".
6. Include precautions or safety warnings under key "precautions" if needed.
7. Output MUST be valid JSON.`,
		req.Name, req.Age, req.Gender,
		strings.Join(req.Symptoms, ", "), req.CustomSymptoms,
		req.History, req.BP, req.Sugar)

	text, err := c.generate(ctx, modelFor("GEMINI_MODEL_PRESCRIPTION", "gemini-3-pro-preview"), prompt, true)
	if err != nil {
		log.Printf("agi: prescription generation failed: %v", err)
		return nil, err
	}

	var result PrescriptionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		log.Printf("agi: prescription payload did not parse: %v", err)
		return nil, fmt.Errorf("agi: parse prescription: %w", err)
	}
	if result.Diagnosis == "" && len(result.Medicines) == 0 {
		return nil, fmt.Errorf("agi: empty prescription")
	}
	return &result, nil
}

func (c *GeminiClient) FindMedicineInfo(ctx context.Context, query, mode string) ([]MedicineInfo, error) {
	kind := "Brand Name (find alternatives)"
	if mode == "generic" {
		kind = "Generic Name (find brands)"
	}
	prompt := fmt.Sprintf(`Find medicine information for the Bangladeshi market:
Query: %q
Type: %s

Provide a JSON array of objects with keys brandName, genericName, company, price (approximate, in BDT).`, query, kind)

	text, err := c.generate(ctx, modelFor("GEMINI_MODEL_SEARCH", "gemini-3-flash-preview"), prompt, true)
	if err != nil {
		log.Printf("agi: medicine search failed: %v", err)
		return nil, err
	}

	var results []MedicineInfo
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("agi: parse medicine list: %w", err)
	}
	return results, nil
}

func (c *GeminiClient) MedicineGuide(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf(`Provide a detailed guide for %q in Bengali.
Include uses, dosage overview, side effects, and warnings.`, name)

	text, err := c.generate(ctx, modelFor("GEMINI_MODEL_SEARCH", "gemini-3-flash-preview"), prompt, false)
	if err != nil {
		log.Printf("agi: medicine guide lookup failed: %v", err)
		return "", err
	}
	return text, nil
}

func modelFor(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}
