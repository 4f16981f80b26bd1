package api

import (
	"net/http"
	"strconv"
	"time"

	"mobility-mate/model"
)

func (h *Handlers) handleLocationPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.Uploads.SeedPoints(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handlers) handleReportIssue(w http.ResponseWriter, r *http.Request) {
	var report model.Report
	if !decodeJSON(w, r, &report) {
		return
	}
	report.Timestamp = time.Now().UTC()

	if err := h.Community.AddReport(r.Context(), report); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Report submitted successfully!"})
}

func (h *Handlers) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if !decodeJSON(w, r, &user) {
		return
	}
	if user.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.Community.AddUser(r.Context(), user); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "User added"})
}

func (h *Handlers) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Community.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func parseFloatField(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
