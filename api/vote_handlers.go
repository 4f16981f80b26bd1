package api

import (
	"errors"
	"net/http"
	"net/url"

	"mobility-mate/service"

	"github.com/gorilla/mux"
)

type submitVoteRequest struct {
	DeviceID   string `json:"device_id"`
	LocationID string `json:"location_id"`
	ImageURL   string `json:"image_url"`
	IsAccurate *bool  `json:"is_accurate"`
	Username   string `json:"username"`
}

func (h *Handlers) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req submitVoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tally, err := h.Votes.SubmitVote(r.Context(), service.SubmitVoteRequest{
		DeviceID:   req.DeviceID,
		LocationID: req.LocationID,
		ImageURL:   req.ImageURL,
		IsAccurate: req.IsAccurate,
		Username:   req.Username,
	})
	if errors.Is(err, service.ErrDuplicateVote) {
		// Rejection still carries the current tallies so the client can
		// refresh its display.
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "You have already voted on this image",
			"accurate_count":    tally.AccurateCount,
			"inaccurate_count":  tally.InaccurateCount,
			"device_vote_count": tally.DeviceVoteCount,
		})
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Vote recorded successfully",
		"accurate_count":    tally.AccurateCount,
		"inaccurate_count":  tally.InaccurateCount,
		"device_vote_count": tally.DeviceVoteCount,
	})
}

func (h *Handlers) handleImageTally(w http.ResponseWriter, r *http.Request) {
	// The router leaves the var encoded; clients send the image URL
	// percent-escaped.
	imageURL := mux.Vars(r)["imageURL"]
	if decoded, err := url.PathUnescape(imageURL); err == nil {
		imageURL = decoded
	}

	tally, err := h.Votes.GetImageTally(r.Context(), imageURL)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

func (h *Handlers) handleDeviceVotes(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceID"]

	votes, err := h.Votes.GetDeviceVotes(r.Context(), deviceID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
