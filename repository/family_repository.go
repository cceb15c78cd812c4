package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

// FamilyRepository handles database operations for Family entities
type FamilyRepository struct {
	DB *gorm.DB
}

// NewFamilyRepository creates a new instance of FamilyRepository
func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

// Create inserts the family record and its initial profile in one
// transaction so both succeed or both fail.
func (r *FamilyRepository) Create(family *models.Family, profile *models.Profile) error {
	now := time.Now().Unix()
	if family.CreatedAt == 0 {
		family.CreatedAt = now
	}
	profile.FamilyID = family.ID
	if profile.UpdatedAt == 0 {
		profile.UpdatedAt = now
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create family %s: %w", family.ID, err)
	}
	return nil
}

// GetByID retrieves a family by its ID
func (r *FamilyRepository) GetByID(familyID tenant.ID) (*models.Family, error) {
	var family models.Family
	err := r.DB.Where("id = ?", string(familyID)).First(&family).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get family %s: %w", familyID, err)
	}
	return &family, nil
}
