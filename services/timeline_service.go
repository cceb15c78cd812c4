package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/littlesteps/littlestepsbackend/media"
	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/repository"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

// ErrInvalidEvent indicates the event input is missing a required
// field; nothing is written when it is returned.
var ErrInvalidEvent = errors.New("event type and date are required")

const defaultAuthor = "Mom"

// TimelineService orchestrates event creation: media blob first, then
// the event row, then the best-effort profile growth refresh.
type TimelineService struct {
	events   repository.EventRepositoryInterface
	profiles repository.ProfileRepositoryInterface
	store    media.Store
}

// NewTimelineService creates a new timeline service
func NewTimelineService(
	events repository.EventRepositoryInterface,
	profiles repository.ProfileRepositoryInterface,
	store media.Store,
) *TimelineService {
	return &TimelineService{
		events:   events,
		profiles: profiles,
		store:    store,
	}
}

// NewEventInput carries one add-event request. MediaData is the raw
// upload, if any; Height/Weight are only honored for GROWTH events.
type NewEventInput struct {
	Type             string
	Date             string
	Title            string
	Description      string
	Author           string
	Height           *float64
	Weight           *float64
	MediaFilename    string
	MediaData        []byte
	MediaContentType string
}

// AddEvent validates the input, stores any attached media under the
// family's key space, inserts the event row, and finally refreshes the
// profile's cached measurements for GROWTH events. The media write
// happens strictly before the row insert so a row can never reference
// an object that was never written; the growth refresh happens strictly
// after and its failure only leaves the profile stale.
func (s *TimelineService) AddEvent(familyID tenant.ID, in NewEventInput) (*models.Event, error) {
	if in.Type == "" || in.Date == "" {
		return nil, ErrInvalidEvent
	}
	author := in.Author
	if author == "" {
		author = defaultAuthor
	}

	event := &models.Event{
		ID:          uuid.NewString(),
		FamilyID:    string(familyID),
		Type:        in.Type,
		Date:        in.Date,
		Title:       in.Title,
		Description: in.Description,
		Author:      author,
		Tags:        "[]",
	}

	if in.Type == string(models.EventTypeGrowth) {
		event.Height = in.Height
		event.Weight = in.Weight
	}

	var storedKey *media.ObjectKey
	if len(in.MediaData) > 0 {
		key := media.NewObjectKey(familyID, in.Date, in.MediaFilename)
		if err := s.store.Put(key, in.MediaData, in.MediaContentType); err != nil {
			return nil, fmt.Errorf("failed to store event media: %w", err)
		}
		storedKey = &key
		keyStr := key.String()
		event.MediaKey = &keyStr

		if media.IsRasterImage(in.MediaFilename) {
			if w, h, ok := media.ProbeImage(in.MediaData); ok {
				event.MediaWidth = &w
				event.MediaHeight = &h
			}
			event.TakenAt = media.TakenAt(in.MediaData)
		}
	}

	if err := s.events.Create(event); err != nil {
		if storedKey != nil {
			if delErr := s.store.Delete(*storedKey); delErr != nil {
				log.Printf("timeline: failed to remove media %s after aborted event insert: %v", storedKey, delErr)
			}
		}
		return nil, err
	}

	if event.Type == string(models.EventTypeGrowth) && (event.Height != nil || event.Weight != nil) {
		if err := s.profiles.ApplyGrowth(familyID, event.Height, event.Weight); err != nil {
			// the event is already durable; the profile cache is stale
			// until the next successful growth event
			log.Printf("timeline: growth refresh failed for family %s: %v", familyID, err)
		}
	}

	return event, nil
}

// List returns one page of the family's timeline, newest first.
func (s *TimelineService) List(familyID tenant.ID, page, limit int, filter repository.EventFilter) ([]models.Event, error) {
	return s.events.ListByFamily(familyID, page, limit, filter)
}
