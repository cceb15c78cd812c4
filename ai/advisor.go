package ai

import (
	"context"
	"errors"
)

// Placeholder strings returned to clients when generation cannot run.
// A failed or unconfigured advisor never fails the caller's request.
const (
	UnavailableMessage   = "AI service currently unavailable."
	ComposeFailedMessage = "Could not generate entry."
)

// ErrUnavailable indicates the generation capability is not configured.
var ErrUnavailable = errors.New("advice capability not configured")

// Advisor is the seam to the external text-generation capability. It
// must be treated as slow and unreliable: callers bound it with a
// context deadline, make at most one attempt per user action, and
// degrade to a placeholder on any error.
type Advisor interface {
	// ComposeJournalEntry writes a short journal entry from optional
	// image bytes and parent-supplied context text.
	ComposeJournalEntry(ctx context.Context, imageBytes []byte, contextText, lang string) (string, error)
	// MilestoneAdvice suggests developmental milestones for a baby of
	// the given age.
	MilestoneAdvice(ctx context.Context, ageInMonths int, lang string) (string, error)
}

// Disabled is the Advisor used when no API key is configured.
type Disabled struct{}

func (Disabled) ComposeJournalEntry(context.Context, []byte, string, string) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) MilestoneAdvice(context.Context, int, string) (string, error) {
	return "", ErrUnavailable
}
