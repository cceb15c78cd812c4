package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

func TestFamilyRepository_CreateWithProfile(t *testing.T) {
	db := newTestDB(t)
	familyRepo := NewFamilyRepository(db)
	profileRepo := NewProfileRepository(db)

	family := &models.Family{ID: uuid.NewString()}
	profile := &models.Profile{
		Name:          "Baby A",
		BirthDate:     "2024-01-01",
		CurrentHeight: models.DefaultHeightCm,
		CurrentWeight: models.DefaultWeightKg,
	}
	require.NoError(t, familyRepo.Create(family, profile))
	assert.NotZero(t, family.CreatedAt)

	got, err := familyRepo.GetByID(tenant.ID(family.ID))
	require.NoError(t, err)
	assert.Equal(t, family.ID, got.ID)

	// the initial profile exists with baseline measurements
	p, err := profileRepo.GetByFamily(tenant.ID(family.ID))
	require.NoError(t, err)
	assert.Equal(t, "Baby A", p.Name)
	assert.Equal(t, family.ID, p.FamilyID)
	assert.Equal(t, models.DefaultHeightCm, p.CurrentHeight)
	assert.Equal(t, models.DefaultWeightKg, p.CurrentWeight)
}

func TestFamilyRepository_CreateAtomic(t *testing.T) {
	db := newTestDB(t)
	familyRepo := NewFamilyRepository(db)
	profileRepo := NewProfileRepository(db)

	family := &models.Family{ID: uuid.NewString()}
	require.NoError(t, familyRepo.Create(family, &models.Profile{Name: "Baby A", BirthDate: "2024-01-01"}))

	// a second create with the same family ID must fail as a unit:
	// no second profile row sneaks in
	dup := &models.Family{ID: family.ID}
	err := familyRepo.Create(dup, &models.Profile{Name: "Imposter", BirthDate: "2024-01-01"})
	require.Error(t, err)

	p, err := profileRepo.GetByFamily(tenant.ID(family.ID))
	require.NoError(t, err)
	assert.Equal(t, "Baby A", p.Name)

	var count int64
	db.Model(&models.Profile{}).Where("family_id = ?", family.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFamilyRepository_GetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewFamilyRepository(db)

	_, err := repo.GetByID("no-such-family")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
