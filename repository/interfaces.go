package repository

import (
	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

// FamilyRepositoryInterface defines the methods for family data operations
type FamilyRepositoryInterface interface {
	// Create inserts the family and its initial profile atomically;
	// there is never a family without a profile.
	Create(family *models.Family, profile *models.Profile) error
	GetByID(familyID tenant.ID) (*models.Family, error)
}

// ProfileRepositoryInterface defines the methods for profile data operations
type ProfileRepositoryInterface interface {
	GetByFamily(familyID tenant.ID) (*models.Profile, error)
	// Update applies only the fields present in upd; an update with no
	// recognized fields is a no-op success.
	Update(familyID tenant.ID, upd models.ProfileUpdate) error
	// ApplyGrowth merges new measurements into the cached current
	// values: each non-nil value overwrites, nil leaves the current
	// value untouched. This is the growth-event cache refresh and is
	// deliberately not transactional with the event write.
	ApplyGrowth(familyID tenant.ID, height, weight *float64) error
	SetPhotoKey(familyID tenant.ID, photoKey string) error
}

// EventRepositoryInterface defines the methods for timeline event data operations
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	// ListByFamily returns events newest-first with a stable
	// insertion-order tiebreak, offset-paginated (page is 1-indexed).
	ListByFamily(familyID tenant.ID, page, limit int, filter EventFilter) ([]models.Event, error)
}
