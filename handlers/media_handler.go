package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/littlesteps/littlestepsbackend/media"
)

type MediaHandler struct {
	Store media.Store
}

// GetMedia serves a stored object by its exact key. There is no tenant
// check on this route: the key itself, carrying the family prefix and
// a random suffix, is the secret. The object's content fingerprint is
// exposed as an ETag so clients can revalidate cheaply.
func (mh *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	keyStr := chi.URLParam(r, "*")
	key, err := media.ParseKey(keyStr)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid media key")
		return
	}

	obj, err := mh.Store.Get(key)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			log.Printf("Error reading media object %s: %v", key, err)
			WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to read media object")
		}
		return
	}

	etag := `"` + obj.ETag + `"`
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	cacheDuration := 24 * time.Hour
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", obj.Size))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
	w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

	if _, err := w.Write(obj.Data); err != nil {
		log.Printf("Error writing media object %s to response: %v", key, err)
	}
}

// etagMatches reports whether an If-None-Match header names the given
// quoted ETag. The header may carry a comma-separated validator list,
// weak (W/) prefixes added by intermediaries, or "*". Content ETags
// never change for the same bytes, so a weak match is treated as a hit.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
