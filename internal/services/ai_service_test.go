package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/albaz/internal/services"
)

const unavailable = "Sorry, AI service is currently unavailable."

func generateResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestGenerateCourseSummary(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload, "contents")

		json.NewEncoder(w).Encode(generateResponse("1. Learn React fast."))
	}))
	defer server.Close()

	ai := services.NewAIService(server.URL, "test-key", "gemini-2.0-flash")
	summary := ai.GenerateCourseSummary(context.Background(), "React", "A react course")

	assert.Equal(t, "1. Learn React fast.", summary)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
}

func TestAskAssistant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse("useState manages local state."))
	}))
	defer server.Close()

	ai := services.NewAIService(server.URL, "test-key", "gemini-2.0-flash")
	answer := ai.AskAssistant(context.Background(), "What is useState?", "React course")

	assert.Equal(t, "useState manages local state.", answer)
}

func TestDegradesOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ai := services.NewAIService(server.URL, "test-key", "gemini-2.0-flash")
	assert.Equal(t, unavailable, ai.AskAssistant(context.Background(), "q", ""))
}

func TestDegradesOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	ai := services.NewAIService(server.URL, "test-key", "gemini-2.0-flash")
	assert.Equal(t, unavailable, ai.GenerateCourseSummary(context.Background(), "t", "d"))
}

func TestDegradesWithoutAPIKey(t *testing.T) {
	ai := services.NewAIService("http://127.0.0.1:0", "", "gemini-2.0-flash")
	assert.Equal(t, unavailable, ai.AskAssistant(context.Background(), "q", ""))
}
