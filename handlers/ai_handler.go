package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/littlesteps/littlestepsbackend/ai"
)

type AIHandler struct {
	Advisor ai.Advisor
	Timeout time.Duration
}

// ComposeJournal asks the advice gateway for a journal entry draft.
// Generation failures never fail the request: the client always gets a
// 200 with either the generated text or a placeholder.
func (ah *AIHandler) ComposeJournal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64 string `json:"imageBase64"`
		Context     string `json:"context"`
		Lang        string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ah.timeout())
	defer cancel()

	text, err := ah.Advisor.ComposeJournalEntry(ctx, decodeImage(req.ImageBase64), req.Context, req.Lang)
	if err != nil {
		if err == ai.ErrUnavailable {
			text = ai.UnavailableMessage
		} else {
			log.Printf("Journal generation failed: %v", err)
			text = ai.ComposeFailedMessage
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// MilestoneAdvice asks the advice gateway for age-appropriate milestone
// suggestions, degrading to an empty string on any failure.
func (ah *AIHandler) MilestoneAdvice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AgeInMonths int    `json:"ageInMonths"`
		Lang        string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ah.timeout())
	defer cancel()

	text, err := ah.Advisor.MilestoneAdvice(ctx, req.AgeInMonths, req.Lang)
	if err != nil {
		if err != ai.ErrUnavailable {
			log.Printf("Milestone advice failed: %v", err)
		}
		text = ""
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (ah *AIHandler) timeout() time.Duration {
	if ah.Timeout > 0 {
		return ah.Timeout
	}
	return 25 * time.Second
}

// decodeImage accepts either a raw base64 payload or a data URL and
// returns the image bytes; anything undecodable is treated as absent.
func decodeImage(imageBase64 string) []byte {
	if imageBase64 == "" {
		return nil
	}
	if idx := strings.Index(imageBase64, ","); idx >= 0 {
		imageBase64 = imageBase64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		log.Printf("Ignoring undecodable journal image: %v", err)
		return nil
	}
	return data
}
