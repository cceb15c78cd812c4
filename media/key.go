package media

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/littlesteps/littlestepsbackend/tenant"
)

// UndatedBucket is the day folder used when an event date cannot be
// parsed. Such objects still live under their family prefix.
const UndatedBucket = "undated"

// layouts accepted when deriving the day bucket from a supplied event
// date. Dates are bucketed in the timezone they were supplied in.
var dayBucketLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ObjectKey is the structured form of a media object key. Its string
// form is {familyID}/{dayBucket}/{randomID}.{ext}; the family prefix
// makes cross-family reads structurally impossible, and the random
// suffix makes collisions within a family/day practically impossible.
type ObjectKey struct {
	FamilyID  string
	DayBucket string
	RandomID  string
	Ext       string
}

// NewObjectKey builds a fresh key for an upload belonging to the given
// family. eventDate is the parent-supplied event timestamp; filename is
// only consulted for its extension.
func NewObjectKey(familyID tenant.ID, eventDate, filename string) ObjectKey {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return ObjectKey{
		FamilyID:  string(familyID),
		DayBucket: dayBucket(eventDate),
		RandomID:  uuid.NewString(),
		Ext:       ext,
	}
}

func dayBucket(eventDate string) string {
	for _, layout := range dayBucketLayouts {
		if t, err := time.Parse(layout, eventDate); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return UndatedBucket
}

// String renders the key in its canonical slash-separated form.
func (k ObjectKey) String() string {
	return fmt.Sprintf("%s/%s/%s.%s", k.FamilyID, k.DayBucket, k.RandomID, k.Ext)
}

// BelongsTo reports whether the key is scoped to the given family.
func (k ObjectKey) BelongsTo(familyID tenant.ID) bool {
	return k.FamilyID == string(familyID)
}

// ParseKey validates and decomposes a key string received from a
// client. It rejects anything that is not exactly three non-empty path
// segments with a file extension, which also rules out traversal.
func ParseKey(s string) (ObjectKey, error) {
	if strings.Contains(s, "..") || strings.HasPrefix(s, "/") {
		return ObjectKey{}, fmt.Errorf("invalid media key %q", s)
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ObjectKey{}, fmt.Errorf("invalid media key %q: expected family/day/file", s)
	}
	for _, p := range parts {
		if p == "" || p == "." {
			return ObjectKey{}, fmt.Errorf("invalid media key %q: empty segment", s)
		}
	}
	name := parts[2]
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return ObjectKey{}, fmt.Errorf("invalid media key %q: missing file extension", s)
	}
	return ObjectKey{
		FamilyID:  parts[0],
		DayBucket: parts[1],
		RandomID:  name[:dot],
		Ext:       name[dot+1:],
	}, nil
}
