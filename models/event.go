package models

import "encoding/json"

// EventType enumerates the kinds of timeline entries.
type EventType string

const (
	EventTypePhoto     EventType = "PHOTO"
	EventTypeMilestone EventType = "MILESTONE"
	EventTypeGrowth    EventType = "GROWTH"
	EventTypeNote      EventType = "NOTE"
)

// Event is one timeline entry. Rows are append-only from the
// application's perspective: created once, never updated in place.
// Seq is the insertion-order tiebreak that keeps pagination
// deterministic when two events share a date.
// It corresponds to the 'events' table.
type Event struct {
	Seq         int64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID          string   `gorm:"uniqueIndex;not null" json:"id"`
	FamilyID    string   `gorm:"index;not null" json:"family_id"`
	Type        string   `gorm:"not null" json:"type"`
	Date        string   `gorm:"not null" json:"date"` // parent-supplied ISO timestamp, sort and filter key
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MediaKey    *string  `json:"media_key,omitempty"`
	MediaWidth  *int     `json:"media_width,omitempty"`
	MediaHeight *int     `json:"media_height,omitempty"`
	Height      *float64 `json:"height,omitempty"` // cm, GROWTH events only
	Weight      *float64 `json:"weight,omitempty"` // kg, GROWTH events only
	TakenAt     *int64   `json:"taken_at,omitempty"` // EXIF capture time, Unix timestamp
	Author      string   `gorm:"not null" json:"author"`
	Tags        string   `gorm:"not null;default:'[]'" json:"-"` // JSON array, reserved
	CreatedAt   int64    `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// GrowthData is the nested height/weight pair on the wire.
type GrowthData struct {
	Height *float64 `json:"height,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// EventResponse is the external representation of an Event as consumed
// by the timeline client.
type EventResponse struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	MediaURL    string      `json:"mediaUrl,omitempty"`
	MediaWidth  *int        `json:"mediaWidth,omitempty"`
	MediaHeight *int        `json:"mediaHeight,omitempty"`
	TakenAt     *int64      `json:"takenAt,omitempty"`
	GrowthData  *GrowthData `json:"growthData,omitempty"`
	Tags        []string    `json:"tags"`
	Author      string      `json:"author"`
}

// ToResponse shapes an Event for the wire. GrowthData is present only
// when at least one of height/weight is non-nil; MediaURL is a locator
// resolvable by the media endpoint.
func (e *Event) ToResponse() EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Type:        e.Type,
		Date:        e.Date,
		Title:       e.Title,
		Description: e.Description,
		Author:      e.Author,
		Tags:        []string{},
	}
	if e.MediaKey != nil && *e.MediaKey != "" {
		resp.MediaURL = MediaURLPrefix + *e.MediaKey
		resp.MediaWidth = e.MediaWidth
		resp.MediaHeight = e.MediaHeight
		resp.TakenAt = e.TakenAt
	}
	if e.Height != nil || e.Weight != nil {
		resp.GrowthData = &GrowthData{Height: e.Height, Weight: e.Weight}
	}
	if e.Tags != "" {
		var tags []string
		if err := json.Unmarshal([]byte(e.Tags), &tags); err == nil && tags != nil {
			resp.Tags = tags
		}
	}
	return resp
}
