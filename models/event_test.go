package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int             { return &v }
func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func TestEventToResponse_MediaMetadata(t *testing.T) {
	event := Event{
		ID:          "evt-1",
		Type:        string(EventTypePhoto),
		Date:        "2024-03-15T10:00:00Z",
		MediaKey:    strPtr("fam/2024-03-15/abc.jpg"),
		MediaWidth:  intPtr(4032),
		MediaHeight: intPtr(3024),
		TakenAt:     int64Ptr(1710496800),
		Author:      "Mom",
	}

	resp := event.ToResponse()
	assert.Equal(t, MediaURLPrefix+"fam/2024-03-15/abc.jpg", resp.MediaURL)
	assert.Equal(t, 4032, *resp.MediaWidth)
	assert.Equal(t, 3024, *resp.MediaHeight)
	assert.Equal(t, int64(1710496800), *resp.TakenAt)
	assert.Nil(t, resp.GrowthData)
}

func TestEventToResponse_NoMedia(t *testing.T) {
	event := Event{
		ID:     "evt-2",
		Type:   string(EventTypeGrowth),
		Date:   "2024-06-01T10:00:00Z",
		Height: float64Ptr(68),
		Author: "Dad",
	}

	resp := event.ToResponse()
	assert.Empty(t, resp.MediaURL)
	assert.Nil(t, resp.MediaWidth)
	assert.Nil(t, resp.MediaHeight)
	assert.Nil(t, resp.TakenAt)
	assert.NotNil(t, resp.GrowthData)
	assert.Equal(t, 68.0, *resp.GrowthData.Height)
	assert.Nil(t, resp.GrowthData.Weight)
	assert.Equal(t, []string{}, resp.Tags)
}
