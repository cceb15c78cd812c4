package repository

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

// EventFilter narrows a timeline listing to events whose date matches
// every supplied calendar component. Empty fields match everything.
// Month and day accept unpadded values ("3" matches March).
type EventFilter struct {
	Year  string
	Month string
	Day   string
}

// EventRepository handles database operations for timeline events
type EventRepository struct {
	DB *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// Create inserts a new event row. Events are append-only; there is no
// update path.
func (r *EventRepository) Create(event *models.Event) error {
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}
	if event.Tags == "" {
		event.Tags = "[]"
	}
	if err := r.DB.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", event.ID, err)
	}
	return nil
}

// ListByFamily returns a page of the family's events, newest first.
// Ordering is date descending with the insertion sequence as tiebreak,
// so repeated calls with no intervening writes are identical and
// pagination is deterministic. The query is built dynamically with
// squirrel because each filter field is optional.
func (r *EventRepository) ListByFamily(familyID tenant.ID, page, limit int, filter EventFilter) ([]models.Event, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	qb := sq.Select(
		"seq", "id", "family_id", "type", "date", "title", "description",
		"media_key", "media_width", "media_height", "height", "weight",
		"taken_at", "author", "tags", "created_at",
	).
		From("events").
		Where(sq.Eq{"family_id": string(familyID)})

	// Components are cut straight out of the stored ISO string so a
	// date keeps its own calendar day regardless of any timezone
	// offset it carries. strftime would shift offset dates to UTC
	// before extracting, making an event miss its own year/month/day.
	if filter.Year != "" {
		qb = qb.Where("substr(date, 1, 4) = ?", filter.Year)
	}
	if filter.Month != "" {
		qb = qb.Where("substr(date, 6, 2) = ?", pad2(filter.Month))
	}
	if filter.Day != "" {
		qb = qb.Where("substr(date, 9, 2) = ?", pad2(filter.Day))
	}

	qb = qb.OrderBy("date DESC", "seq DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event list query: %w", err)
	}

	var events []models.Event
	if err := r.DB.Raw(sqlStr, args...).Scan(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events for family %s: %w", familyID, err)
	}
	return events, nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
