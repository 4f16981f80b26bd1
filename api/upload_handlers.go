package api

import (
	"net/http"

	"mobility-mate/service"
)

type generateUploadURLRequest struct {
	Filename    string   `json:"filename"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    string   `json:"accessibility_type"`
	ContentType string   `json:"content_type"`
	DeviceID    string   `json:"device_id"`
	Username    string   `json:"username"`
}

func (h *Handlers) handleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req generateUploadURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.Uploads.RegisterUpload(r.Context(), service.RegisterUploadRequest{
		Filename:    req.Filename,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		ContentType: req.ContentType,
		DeviceID:    req.DeviceID,
		Username:    req.Username,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

type confirmUploadRequest struct {
	StorageKey string `json:"storage_key"`
	Category   string `json:"accessibility_type"`
	LocationID string `json:"location_id"`
	DeviceID   string `json:"device_id"`
	Username   string `json:"username"`
}

func (h *Handlers) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	var req confirmUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.Uploads.ConfirmUpload(r.Context(), service.ConfirmUploadRequest{
		StorageKey: req.StorageKey,
		Category:   req.Category,
		LocationID: req.LocationID,
		DeviceID:   req.DeviceID,
		Username:   req.Username,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Image stored and pending approval",
		"submission": sub,
	})
}

const maxUploadBytes = 32 << 20 // 32 MB

func (h *Handlers) handleDirectUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file size exceeds limit")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file found in the request")
		return
	}
	defer file.Close()

	req := service.DirectUploadRequest{
		Filename:    header.Filename,
		Category:    r.FormValue("accessibility_type"),
		ContentType: header.Header.Get("Content-Type"),
		DeviceID:    r.FormValue("device_id"),
		Username:    r.FormValue("username"),
		Body:        file,
	}
	if lat, ok := parseFloatField(r.FormValue("latitude")); ok {
		req.Latitude = &lat
	}
	if lon, ok := parseFloatField(r.FormValue("longitude")); ok {
		req.Longitude = &lon
	}

	sub, err := h.Uploads.DirectUpload(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Image stored and pending approval",
		"submission": sub,
	})
}
