package routes

import (
	"parche_server/controllers"
	"parche_server/services"

	"github.com/gorilla/mux"
)

// RegisterConnectionRoutes sets up routes for PIN-based pairing under
// /api/connections.
func RegisterConnectionRoutes(r *mux.Router, connectionService *services.ConnectionService) {
	controller := controllers.NewConnectionController(connectionService)

	connectionRouter := r.PathPrefix("/api/connections").Subrouter()
	connectionRouter.HandleFunc("", controller.List).Methods("GET")
	connectionRouter.HandleFunc("", controller.Connect).Methods("POST")
	connectionRouter.HandleFunc("/{otherUserId}", controller.Disconnect).Methods("DELETE")
}
