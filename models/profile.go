package models

// Baseline measurements used when a family is created without an
// initial height/weight.
const (
	DefaultHeightCm = 50.0
	DefaultWeightKg = 3.5
)

// MediaURLPrefix is the route prefix under which stored media objects
// are served; a media key appended to it yields a fetchable URL.
const MediaURLPrefix = "/api/media/"

// Profile is the single mutable baby-summary record per family.
// CurrentHeight and CurrentWeight are a persisted cache of the most
// recent GROWTH event values, refreshed best-effort after each growth
// write; they are not a second source of truth.
type Profile struct {
	FamilyID      string  `gorm:"primaryKey" json:"family_id"`
	Name          string  `gorm:"not null" json:"name"`
	BirthDate     string  `gorm:"not null" json:"birth_date"`
	Gender        *string `json:"gender,omitempty"` // boy|girl|other
	PhotoKey      *string `json:"-"`
	PhotoURL      *string `gorm:"-" json:"photo_url,omitempty"`
	CurrentHeight float64 `gorm:"not null" json:"current_height"` // cm
	CurrentWeight float64 `gorm:"not null" json:"current_weight"` // kg
	UpdatedAt     int64   `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// ResolvePhotoURL fills PhotoURL from PhotoKey for wire responses.
func (p *Profile) ResolvePhotoURL() {
	if p.PhotoKey != nil && *p.PhotoKey != "" {
		u := MediaURLPrefix + *p.PhotoKey
		p.PhotoURL = &u
	}
}

// ProfileUpdate carries a partial profile edit. Every field is
// present-or-absent; a nil pointer means "leave unchanged", never
// "clear". Field names match the client payload.
type ProfileUpdate struct {
	Name          *string  `json:"name"`
	BirthDate     *string  `json:"birthDate"`
	Gender        *string  `json:"gender"`
	CurrentHeight *float64 `json:"currentHeight"`
	CurrentWeight *float64 `json:"currentWeight"`
}

// Empty reports whether the update carries no recognized fields.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.BirthDate == nil && u.Gender == nil &&
		u.CurrentHeight == nil && u.CurrentWeight == nil
}
