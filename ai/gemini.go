package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdvisor implements Advisor against the Generative Language API.
type GeminiAdvisor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiAdvisor creates an advisor for the given API key and model.
func NewGeminiAdvisor(apiKey, model string) *GeminiAdvisor {
	return &GeminiAdvisor{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
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
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAdvisor) ComposeJournalEntry(ctx context.Context, imageBytes []byte, contextText, lang string) (string, error) {
	var parts []part
	if len(imageBytes) > 0 {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: http.DetectContentType(imageBytes),
			Data:     base64.StdEncoding.EncodeToString(imageBytes),
		}})
	}

	var sb strings.Builder
	sb.WriteString("You are a warm, loving assistant helping a parent write a baby journal.\n")
	fmt.Fprintf(&sb, "Context provided by parent: %q.\n", contextText)
	if len(imageBytes) > 0 {
		sb.WriteString("Please describe the photo and the moment cheerfully.\n")
	}
	sb.WriteString("Write a short, sentimental, and cute journal entry (max 3 sentences).\n")
	sb.WriteString("Tone: Emotional, Happy, Cherishing.")
	appendLanguage(&sb, lang)

	parts = append(parts, part{Text: sb.String()})
	return g.generate(ctx, parts)
}

func (g *GeminiAdvisor) MilestoneAdvice(ctx context.Context, ageInMonths int, lang string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "My baby is %d months old. What are 3 key developmental milestones I should look out for right now? Keep it brief and bulleted. Return as Markdown.", ageInMonths)
	appendLanguage(&sb, lang)
	return g.generate(ctx, []part{{Text: sb.String()}})
}

func appendLanguage(sb *strings.Builder, lang string) {
	if lang != "" && lang != "en" {
		fmt.Fprintf(sb, "\nRespond in the language with code %q.", lang)
	}
}

func (g *GeminiAdvisor) generate(ctx context.Context, parts []part) (string, error) {
	if g.apiKey == "" {
		return "", ErrUnavailable
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation request returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("generation response contained no candidates")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
