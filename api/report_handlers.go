package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Reports.ComputeLeaderboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

func (h *Handlers) handleDeviceVoteSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Reports.ComputeDeviceVoteSummary(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": summaries})
}

func (h *Handlers) handleDeviceUploadTotal(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceID"]

	total, err := h.Reports.ComputeDeviceUploadTotal(r.Context(), deviceID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":    deviceID,
		"upload_count": total,
	})
}

func (h *Handlers) handleDeviceUploadedImages(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceID"]

	images, err := h.Reports.ComputeDeviceUploadedImages(r.Context(), deviceID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": deviceID,
		"images":    images,
	})
}
