package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/littlesteps/littlestepsbackend/media"
	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/repository"
)

const maxUploadBytes = 32 << 20

type ProfileHandler struct {
	Profiles repository.ProfileRepositoryInterface
	Store    media.Store
}

func (ph *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	familyID, ok := familyFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := ph.Profiles.GetByFamily(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "Profile not found")
		} else {
			log.Printf("Error getting profile for family %s: %v", familyID, err)
			WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to retrieve profile")
		}
		return
	}

	profile.ResolvePhotoURL()
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a partial edit. A body with no recognized
// fields is a no-op success, not an error.
func (ph *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	familyID, ok := familyFromRequest(w, r)
	if !ok {
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := ph.Profiles.Update(familyID, upd); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "Profile not found")
		} else {
			log.Printf("Error updating profile for family %s: %v", familyID, err)
			WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to update profile")
		}
		return
	}

	profile, err := ph.Profiles.GetByFamily(familyID)
	if err != nil {
		log.Printf("Error fetching updated profile for family %s: %v", familyID, err)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
		return
	}
	profile.ResolvePhotoURL()
	writeJSON(w, http.StatusOK, profile)
}

// UploadAvatar stores a profile photo in the media store and associates
// it with the profile. The blob is written before the profile row is
// touched.
func (ph *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	familyID, ok := familyFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeValidation, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read uploaded file")
		return
	}

	key := media.NewObjectKey(familyID, time.Now().UTC().Format(time.RFC3339), header.Filename)
	if err := ph.Store.Put(key, data, header.Header.Get("Content-Type")); err != nil {
		log.Printf("Error storing avatar for family %s: %v", familyID, err)
		WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to store avatar")
		return
	}

	if err := ph.Profiles.SetPhotoKey(familyID, key.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "Profile not found")
		} else {
			log.Printf("Error setting avatar key for family %s: %v", familyID, err)
			WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to update profile photo")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"photoUrl": models.MediaURLPrefix + key.String(),
	})
}
