package repository

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/database"
	"github.com/littlesteps/littlestepsbackend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

// createTestFamily inserts a family with an initial profile and returns
// its ID.
func createTestFamily(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	repo := NewFamilyRepository(db)
	family := &models.Family{ID: uuid.NewString()}
	profile := &models.Profile{
		Name:          name,
		BirthDate:     "2024-01-01",
		CurrentHeight: models.DefaultHeightCm,
		CurrentWeight: models.DefaultWeightKg,
	}
	require.NoError(t, repo.Create(family, profile))
	return family.ID
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }
