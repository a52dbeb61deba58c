package controllers

import (
	"net/http"

	"parche_server/services"
)

// MediaController handles presigned URL requests for plan images.
type MediaController struct {
	MediaService *services.MediaService
	UserService  *services.UserService
}

// NewMediaController creates a new MediaController instance.
func NewMediaController(mediaService *services.MediaService, userService *services.UserService) *MediaController {
	return &MediaController{MediaService: mediaService, UserService: userService}
}

// UploadURL returns a presigned PUT URL. Only admins upload plan images.
func (mc *MediaController) UploadURL(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)
	if actor == "" {
		writeError(w, services.ErrUnauthenticated)
		return
	}
	isAdmin, err := mc.UserService.IsAdmin(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	if !isAdmin {
		writeError(w, services.ErrForbidden)
		return
	}

	var body struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.FileName == "" || body.FileType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fileName and fileType are required"})
		return
	}

	url, key, err := mc.MediaService.GenerateUploadURL(r.Context(), body.FileName, body.FileType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// ReadURL returns a presigned GET URL for an uploaded object.
func (mc *MediaController) ReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}

	url, err := mc.MediaService.GenerateReadURL(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}
