package api

import (
	"net/http"

	"mobility-mate/service"
)

func (h *Handlers) handlePendingApprovals(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Uploads.PendingApprovals(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if pending == nil {
		pending = []service.CategoryPending{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": pending})
}

type setApprovalRequest struct {
	Category     string `json:"accessibility_type"`
	LocationID   string `json:"location_id"`
	SubmissionID string `json:"submission_id"`
	Approved     *bool  `json:"approved"`
}

func (h *Handlers) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	var req setApprovalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Approved == nil {
		writeError(w, http.StatusBadRequest, "approved is required")
		return
	}

	approvedAt, err := h.Uploads.SetApproval(r.Context(), req.Category, req.LocationID, req.SubmissionID, *req.Approved)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "Image approval updated",
		"submission_id":       req.SubmissionID,
		"approved":            *req.Approved,
		"image_approved_time": approvedAt,
	})
}
