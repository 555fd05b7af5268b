package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/claims"
)

// ClaimsHandler handles the claim workflow endpoints.
type ClaimsHandler struct {
	Coordinator *claims.Coordinator
}

type requestClaimRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type resolveClaimRequest struct {
	FinderEmail string `json:"finder_email"`
}

type handoverRequest struct {
	FinderEmail  string `json:"finder_email"`
	ClaimerName  string `json:"claimer_name"`
	ClaimerEmail string `json:"claimer_email"`
	Notes        string `json:"notes"`
}

// RequestClaim handles POST /api/items/{id}/claim.
func (h *ClaimsHandler) RequestClaim(w http.ResponseWriter, r *http.Request) {
	var req requestClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if !validEmail(req.Email) {
		jsonError(w, http.StatusBadRequest, "valid email required")
		return
	}

	item, err := h.Coordinator.RequestClaim(r.Context(), r.PathValue("id"), req.Email, req.Name, req.Message)
	if err != nil {
		claimError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Approve handles POST /api/items/{id}/approve.
func (h *ClaimsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req resolveClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEmail(req.FinderEmail) {
		jsonError(w, http.StatusBadRequest, "valid finder email required")
		return
	}

	item, err := h.Coordinator.ApproveClaim(r.Context(), r.PathValue("id"), req.FinderEmail)
	if err != nil {
		claimError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Reject handles POST /api/items/{id}/reject.
func (h *ClaimsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req resolveClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEmail(req.FinderEmail) {
		jsonError(w, http.StatusBadRequest, "valid finder email required")
		return
	}

	item, err := h.Coordinator.RejectClaim(r.Context(), r.PathValue("id"), req.FinderEmail)
	if err != nil {
		claimError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Handover handles POST /api/items/{id}/handover: the finder records
// that the owner picked the item up without an online claim request.
func (h *ClaimsHandler) Handover(w http.ResponseWriter, r *http.Request) {
	var req handoverRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEmail(req.FinderEmail) {
		jsonError(w, http.StatusBadRequest, "valid finder email required")
		return
	}
	if req.ClaimerName == "" || !validEmail(req.ClaimerEmail) {
		jsonError(w, http.StatusBadRequest, "claimer name and valid email required")
		return
	}

	item, err := h.Coordinator.RecordHandover(r.Context(), r.PathValue("id"),
		req.FinderEmail, req.ClaimerName, req.ClaimerEmail, req.Notes)
	if err != nil {
		claimError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}
