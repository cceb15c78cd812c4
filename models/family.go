package models

// Family is the tenancy root. Its ID is an opaque token generated at
// registration and handed back to the client; it is never reused and
// never changes. It corresponds to the 'families' table.
type Family struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Family) TableName() string {
	return "families"
}
