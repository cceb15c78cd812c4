package handlers

import (
	"net/http"

	"github.com/littlesteps/littlestepsbackend/tenant"
)

// FamilyIDHeader is the request header carrying the family token.
const FamilyIDHeader = "X-Family-ID"

// FamilyAuth is the tenant access gate: it extracts the family ID from
// the request header and puts it on the context for downstream
// handlers. A missing header is rejected before any store is touched.
// The token is opaque; no existence check happens here, so an unknown
// ID simply finds no rows downstream.
func FamilyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(FamilyIDHeader)
		if id == "" {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeMissingFamilyID, FamilyIDHeader+" header is required")
			return
		}
		ctx := tenant.WithID(r.Context(), tenant.ID(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// familyFromRequest reads the family ID the gate placed on the context.
// It writes the error response itself when the ID is absent.
func familyFromRequest(w http.ResponseWriter, r *http.Request) (tenant.ID, bool) {
	id, err := tenant.FromContext(r.Context())
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeMissingFamilyID, FamilyIDHeader+" header is required")
		return "", false
	}
	return id, true
}
