package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAdviseRequest(t *testing.T) {
	var got GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"## Leaf "},{"text":"rust"}]}}]}`)
	}))
	defer server.Close()

	svc := NewGeminiService("secret", WithBaseURL(server.URL+"/"), WithModel("test-model"), WithHTTPClient(server.Client()))
	advice := svc.Advise(context.Background(), "what is this?", i18n.French, &domain.InlineImage{MimeType: "image/png", Data: "aGk="})

	assert.Equal(t, OutcomeOK, advice.Outcome)
	assert.Equal(t, "## Leaf rust", advice.Text)

	require.NotNil(t, got.SystemInstruction)
	require.Len(t, got.SystemInstruction.Parts, 1)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "MUST be French")
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "Diagnose plant issues")

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/png", parts[0].InlineData.MimeType)
	assert.Equal(t, "aGk=", parts[0].InlineData.Data)
	assert.Nil(t, parts[1].InlineData)
	assert.Equal(t, "what is this?", parts[1].Text)
}

func TestGeminiAdviseTextOnly(t *testing.T) {
	var got GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer server.Close()

	svc := NewGeminiService("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	advice := svc.Advise(context.Background(), "hi", i18n.English, nil)

	assert.True(t, advice.OK())
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "hi", got.Contents[0].Parts[0].Text)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "MUST be English")
}

func TestGeminiAdviseNoKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewGeminiService("", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	advice := svc.Advise(context.Background(), "hi", i18n.French, nil)

	assert.Equal(t, OutcomeNoCredential, advice.Outcome)
	assert.Equal(t, i18n.T(i18n.French, "advisor_error_no_credential"), advice.Text)
	assert.False(t, called)
}

func TestGeminiAdviseFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"code":429,"message":"quota"}}`)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		},
		"no candidates": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates":[]}`)
		},
		"html error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `<html>bad gateway</html>`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			svc := NewGeminiService("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
			advice := svc.Advise(context.Background(), "hi", i18n.English, nil)
			assert.Equal(t, OutcomeFailed, advice.Outcome)
			assert.Equal(t, i18n.T(i18n.English, "advisor_error_request"), advice.Text)
		})
	}
}

func TestGeminiAdviseTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	svc := NewGeminiService("secret", WithBaseURL(url))
	advice := svc.Advise(context.Background(), "hi", i18n.English, nil)
	assert.Equal(t, OutcomeFailed, advice.Outcome)
}

func TestGeminiGenerateCropPlan(t *testing.T) {
	var got GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"### Week 1: Prep\n- plough"}]}}]}`)
	}))
	defer server.Close()

	svc := NewGeminiService("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	advice := svc.GenerateCropPlan(context.Background(), PlanDetails{
		Crop: "Maize", Season: "Rainy", LandSize: "2", Location: "Kisumu",
	}, i18n.English)

	assert.True(t, advice.OK())
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "crop planning")
	prompt := got.Contents[0].Parts[0].Text
	for _, want := range []string{"Crop: Maize", "Planting Season: Rainy", "Land Size: 2 hectares", "Location: Kisumu"} {
		assert.True(t, strings.Contains(prompt, want), want)
	}
}

func TestGeminiGenerateCropPlanFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewGeminiService("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	advice := svc.GenerateCropPlan(context.Background(), PlanDetails{Crop: "x", Season: "y", LandSize: "1", Location: "z"}, i18n.French)
	assert.Equal(t, OutcomeFailed, advice.Outcome)
	assert.Equal(t, i18n.T(i18n.French, "advisor_error_plan"), advice.Text)
}
