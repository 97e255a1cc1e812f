package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const aiUnavailableMessage = "Sorry, AI service is currently unavailable."

// AIService calls a Gemini-style text-generation endpoint. Every public
// method degrades to a user-visible fallback string instead of surfacing
// transport or quota errors.
type AIService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewAIService creates an AIService. An empty apiKey disables the
// integration; calls then return the unavailable message immediately.
func NewAIService(baseURL, apiKey, model string) *AIService {
	return &AIService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateCourseSummary produces a short selling summary for a course.
func (s *AIService) GenerateCourseSummary(ctx context.Context, title, description string) string {
	prompt := fmt.Sprintf(
		"Summarize this educational course in 3 key points that encourage students to enroll. Title: %s. Description: %s. Keep it catchy.",
		title, description,
	)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		log.Printf("[AI] Summary generation failed: %v", err)
		return aiUnavailableMessage
	}
	return text
}

// AskAssistant answers a student question against the course content.
func (s *AIService) AskAssistant(ctx context.Context, question, courseContext string) string {
	prompt := fmt.Sprintf(
		"You are an educational assistant on the Albaz platform. Course context: %s. Student question: %s. Answer concisely and accurately.",
		courseContext, question,
	)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		log.Printf("[AI] Assistant request failed: %v", err)
		return aiUnavailableMessage
	}
	return text
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("api key not configured")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("ai request marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ai request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ai request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("ai response unmarshal: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai response: empty candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
