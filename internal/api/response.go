package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// claimError maps a claim workflow error onto an HTTP response. Lost
// races and illegal transitions are expected outcomes and must read as
// "this item is no longer available", never as a server failure.
func claimError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, model.ErrClaimNoLongerAvailable):
		jsonError(w, http.StatusConflict, "this item is no longer available for claiming")
	case errors.Is(err, model.ErrStaleClaimState):
		jsonError(w, http.StatusConflict, "this claim was already resolved by someone else")
	case errors.Is(err, model.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, "this item is no longer available")
	case errors.Is(err, model.ErrAuditWriteFailed):
		// The transition committed; report success-ish degradation.
		log.Printf("claim processed but history append failed: %v", err)
		jsonError(w, http.StatusInternalServerError, "claim processed but history could not be recorded")
	default:
		jsonError(w, http.StatusInternalServerError, "failed to process claim")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
