package handlers

import (
	"log"
	"net/http"

	"github.com/facette/natsort"

	"github.com/littlesteps/littlestepsbackend/media"
	"github.com/littlesteps/littlestepsbackend/tenant"
)

type DebugHandler struct {
	Store media.Store
}

// ListFamilyMedia lists every stored object key under a family prefix,
// naturally sorted. Maintenance aid only; not part of the client contract.
// GET /debug/media?family_id=...
func (dh *DebugHandler) ListFamilyMedia(w http.ResponseWriter, r *http.Request) {
	familyID := r.URL.Query().Get("family_id")
	if familyID == "" {
		http.Error(w, "Missing 'family_id' query parameter", http.StatusBadRequest)
		return
	}

	keys, err := dh.Store.List(tenant.ID(familyID))
	if err != nil {
		log.Printf("Error listing media for family %s: %v", familyID, err)
		http.Error(w, "Failed to list media objects", http.StatusInternalServerError)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	natsort.Sort(keys)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"family_id": familyID,
		"count":     len(keys),
		"keys":      keys,
	})
}
