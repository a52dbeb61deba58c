package routes

import (
	"parche_server/controllers"
	"parche_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up presigned URL routes under /api/media.
func RegisterMediaRoutes(r *mux.Router, mediaService *services.MediaService, userService *services.UserService) {
	controller := controllers.NewMediaController(mediaService, userService)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", controller.UploadURL).Methods("POST")
	mediaRouter.HandleFunc("/read-url", controller.ReadURL).Methods("GET")
}
