package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"mobility-mate/service"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the service failure taxonomy onto HTTP statuses:
// validation and rejected content are client errors, missing references are
// 404, everything else (upstream failures, silent no-op writes) is 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *service.ValidationError
	var upstream *service.UpstreamError

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRejectedContent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &upstream):
		h.Log.Error("upstream call failed",
			zap.String("path", r.URL.Path),
			zap.String("op", upstream.Op),
			zap.Error(upstream.Err),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		h.Log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
