package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

// ProfileRepository handles database operations for Profile entities
type ProfileRepository struct {
	DB *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// GetByFamily retrieves the profile for a family; exact lookup, no fallback
func (r *ProfileRepository) GetByFamily(familyID tenant.ID) (*models.Profile, error) {
	var profile models.Profile
	err := r.DB.Where("family_id = ?", string(familyID)).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile for family %s: %w", familyID, err)
	}
	return &profile, nil
}

// Update applies a partial profile edit. Only fields present in upd are
// written; an update carrying no recognized fields is a no-op success.
// Concurrent updates are last-write-wins per field; interleaving with
// the growth-triggered refresh is accepted rather than serialized.
func (r *ProfileRepository) Update(familyID tenant.ID, upd models.ProfileUpdate) error {
	if upd.Empty() {
		return nil
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().Unix(),
	}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.BirthDate != nil {
		updates["birth_date"] = *upd.BirthDate
	}
	if upd.Gender != nil {
		updates["gender"] = *upd.Gender
	}
	if upd.CurrentHeight != nil {
		updates["current_height"] = *upd.CurrentHeight
	}
	if upd.CurrentWeight != nil {
		updates["current_weight"] = *upd.CurrentWeight
	}

	result := r.DB.Model(&models.Profile{}).Where("family_id = ?", string(familyID)).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile for family %s: %w", familyID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.Profile{}).Where("family_id = ?", string(familyID)).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// ApplyGrowth refreshes the cached current measurements from a GROWTH
// event: each supplied value overwrites, each nil value is left alone.
// Callers treat a failure here as staleness, not as an event failure.
func (r *ProfileRepository) ApplyGrowth(familyID tenant.ID, height, weight *float64) error {
	if height == nil && weight == nil {
		return nil
	}
	result := r.DB.Exec(`
		UPDATE profiles
		SET current_height = COALESCE(?, current_height),
		    current_weight = COALESCE(?, current_weight),
		    updated_at = ?
		WHERE family_id = ?`,
		height, weight, time.Now().Unix(), string(familyID))
	if result.Error != nil {
		return fmt.Errorf("failed to apply growth to profile for family %s: %w", familyID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPhotoKey associates an uploaded avatar with the profile
func (r *ProfileRepository) SetPhotoKey(familyID tenant.ID, photoKey string) error {
	result := r.DB.Model(&models.Profile{}).Where("family_id = ?", string(familyID)).Updates(map[string]interface{}{
		"photo_key":  photoKey,
		"updated_at": time.Now().Unix(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to set photo key for family %s: %w", familyID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
