package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNoCredential
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNoCredential:
		return "no_credential"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Advice is the model's reply. Failures are carried as display text with a
// non-OK outcome; callers show Text either way.
type Advice struct {
	Text    string
	Outcome Outcome
}

func (a Advice) OK() bool {
	return a.Outcome == OutcomeOK
}

// Advisor answers a single farmer question, optionally about an image.
type Advisor interface {
	Advise(ctx context.Context, prompt string, lang i18n.Language, image *domain.InlineImage) Advice
}

type GeminiService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type GeminiOption func(*GeminiService)

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(s *GeminiService) { s.httpClient = c }
}

func WithBaseURL(url string) GeminiOption {
	return func(s *GeminiService) { s.baseURL = strings.TrimRight(url, "/") }
}

func WithModel(model string) GeminiOption {
	return func(s *GeminiService) { s.model = model }
}

func NewGeminiService(apiKey string, opts ...GeminiOption) *GeminiService {
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY not set, AI features will not work")
	}
	s := &GeminiService{
		apiKey:     apiKey,
		baseURL:    "https://generativelanguage.googleapis.com/v1beta",
		model:      "gemini-2.5-flash",
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type GenerateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type GenerateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Text joins the text parts of the first candidate.
func (r *GenerateResponse) Text() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), true
}

func baseInstruction(lang i18n.Language) string {
	return "You are AgriPay AI, an expert agricultural assistant for small-scale farmers.\n" +
		"Your response language MUST be " + lang.EnglishName() + ".\n" +
		"Your tone should be helpful, encouraging, and easy to understand for a non-expert audience.\n" +
		"Format your responses using markdown for readability, including headings, lists, and bold text."
}

func adviceInstruction(lang i18n.Language) string {
	return baseInstruction(lang) + "\n" +
		"Provide clear, concise, and actionable advice.\n" +
		"Diagnose plant issues from images and text. Suggest treatments, and give recommendations on soil, weather, and yield prediction."
}

func plannerInstruction(lang i18n.Language) string {
	return baseInstruction(lang) + "\nYou are a specialist in crop planning and scheduling."
}

// Advise asks the model for agricultural advice. The image, if any, goes
// before the text.
func (s *GeminiService) Advise(ctx context.Context, prompt string, lang i18n.Language, image *domain.InlineImage) Advice {
	parts := make([]part, 0, 2)
	if image != nil {
		parts = append(parts, part{InlineData: &inlineData{MimeType: image.MimeType, Data: image.Data}})
	}
	parts = append(parts, part{Text: prompt})

	return s.generate(ctx, adviceInstruction(lang), parts, lang, "advisor_error_request")
}

// GenerateCropPlan asks for a week-by-week plan with one "###" heading per stage.
func (s *GeminiService) GenerateCropPlan(ctx context.Context, d PlanDetails, lang i18n.Language) Advice {
	return s.generate(ctx, plannerInstruction(lang), []part{{Text: cropPlanPrompt(d)}}, lang, "advisor_error_plan")
}

func (s *GeminiService) generate(ctx context.Context, instruction string, parts []part, lang i18n.Language, failKey string) Advice {
	if s.apiKey == "" {
		return Advice{Text: i18n.T(lang, "advisor_error_no_credential"), Outcome: OutcomeNoCredential}
	}

	text, err := s.call(ctx, GenerateRequest{
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
		Contents:          []content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		slog.Error("gemini request failed", "model", s.model, "error", err)
		return Advice{Text: i18n.T(lang, failKey), Outcome: OutcomeFailed}
	}
	return Advice{Text: text, Outcome: OutcomeOK}
}

func (s *GeminiService) call(ctx context.Context, genReq GenerateRequest) (string, error) {
	payload, err := json.Marshal(genReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gemini status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if genResp.Error != nil {
			return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, genResp.Error.Message)
		}
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	text, ok := genResp.Text()
	if !ok {
		return "", fmt.Errorf("no candidates in response")
	}
	return text, nil
}
