package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/littlesteps/littlestepsbackend/models"
	"github.com/littlesteps/littlestepsbackend/repository"
)

type FamilyHandler struct {
	Families repository.FamilyRepositoryInterface
}

// CreateFamily registers a new family and its initial profile. The only
// validation is a non-empty baby name; this is a personal journaling
// tool, not a public registration flow.
func (fh *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BabyName  string `json:"babyName"`
		BirthDate string `json:"birthDate"`
		Gender    string `json:"gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.BabyName == "" {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeValidation, "babyName is required")
		return
	}

	family := &models.Family{ID: uuid.NewString()}
	profile := &models.Profile{
		Name:          req.BabyName,
		BirthDate:     req.BirthDate,
		CurrentHeight: models.DefaultHeightCm,
		CurrentWeight: models.DefaultWeightKg,
	}
	if req.Gender != "" {
		profile.Gender = &req.Gender
	}

	if err := fh.Families.Create(family, profile); err != nil {
		log.Printf("Error creating family for baby '%s': %v", req.BabyName, err)
		WriteAPIError(w, http.StatusInternalServerError, ErrCodePersistence, "Failed to create family")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"familyId": family.ID,
		"name":     profile.Name,
	})
}
