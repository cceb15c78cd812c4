package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlesteps/littlestepsbackend/tenant"
)

func TestNewObjectKey_DayBucket(t *testing.T) {
	tests := []struct {
		name      string
		eventDate string
		want      string
	}{
		{"rfc3339", "2024-03-15T10:30:00Z", "2024-03-15"},
		{"rfc3339 with offset", "2024-03-15T23:30:00+02:00", "2024-03-15"},
		{"datetime without zone", "2024-06-01T08:00:00", "2024-06-01"},
		{"date only", "2024-06-01", "2024-06-01"},
		{"space separated", "2024-06-01 08:00:00", "2024-06-01"},
		{"garbage", "last tuesday", UndatedBucket},
		{"empty", "", UndatedBucket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewObjectKey("fam-1", tt.eventDate, "photo.jpg")
			assert.Equal(t, tt.want, key.DayBucket)
		})
	}
}

func TestNewObjectKey_Extension(t *testing.T) {
	assert.Equal(t, "jpg", NewObjectKey("fam-1", "2024-01-01", "baby.jpg").Ext)
	assert.Equal(t, "png", NewObjectKey("fam-1", "2024-01-01", "First Steps.PNG").Ext)
	assert.Equal(t, "bin", NewObjectKey("fam-1", "2024-01-01", "noextension").Ext)
}

func TestObjectKey_Roundtrip(t *testing.T) {
	key := NewObjectKey("fam-abc", "2024-03-15T10:30:00Z", "photo.jpg")

	parsed, err := ParseKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
	assert.True(t, parsed.BelongsTo(tenant.ID("fam-abc")))
	assert.False(t, parsed.BelongsTo(tenant.ID("fam-other")))
}

func TestParseKey_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"fam-1",
		"fam-1/2024-01-01",
		"fam-1/2024-01-01/a/b.jpg",
		"fam-1//x.jpg",
		"/fam-1/2024-01-01/x.jpg",
		"fam-1/2024-01-01/noext",
		"fam-1/2024-01-01/.jpg",
		"fam-1/2024-01-01/trailing.",
		"fam-1/../secrets.jpg",
		"../fam-1/2024-01-01/x.jpg",
	}
	for _, s := range invalid {
		_, err := ParseKey(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestNewObjectKey_Uniqueness(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		key := NewObjectKey("fam-1", "2024-03-15", "photo.jpg").String()
		require.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}
