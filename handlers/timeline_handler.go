package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/repository"
	"github.com/littlesteps/littlestepsbackend/services"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type TimelineHandler struct {
	Timeline *services.TimelineService
}

// ListTimeline returns one page of the family's events, newest first.
// Callers detect end-of-data by receiving fewer than `limit` results;
// no total count is reported.
func (th *TimelineHandler) ListTimeline(w http.ResponseWriter, r *http.Request) {
	familyID, ok := familyFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}
	filter := repository.EventFilter{
		Year:  q.Get("year"),
		Month: q.Get("month"),
		Day:   q.Get("day"),
	}

	events, err := th.Timeline.List(familyID, page, limit, filter)
	if err != nil {
		log.Printf("Error listing events for family %s: %v", familyID, err)
		WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to retrieve timeline")
		return
	}

	responses := make([]models.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}
	writeJSON(w, http.StatusOK, responses)
}

// AddEvent records a new timeline entry from a multipart form. The
// created event is returned in full so the client can render it without
// a re-read.
func (th *TimelineHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	familyID, ok := familyFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	in := services.NewEventInput{
		Type:        r.FormValue("type"),
		Date:        r.FormValue("date"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Author:      r.FormValue("author"),
		Height:      parseOptionalFloat(r.FormValue("height")),
		Weight:      parseOptionalFloat(r.FormValue("weight")),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read uploaded file")
			return
		}
		in.MediaFilename = header.Filename
		in.MediaData = data
		in.MediaContentType = header.Header.Get("Content-Type")
	} else if !errors.Is(err, http.ErrMissingFile) {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid file upload: "+err.Error())
		return
	}

	event, err := th.Timeline.AddEvent(familyID, in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		} else {
			log.Printf("Error adding event for family %s: %v", familyID, err)
			WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to save event")
		}
		return
	}

	writeJSON(w, http.StatusCreated, event.ToResponse())
}

func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// parseOptionalFloat treats an empty or malformed value as absent
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
