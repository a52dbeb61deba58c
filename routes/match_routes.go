package routes

import (
	"parche_server/controllers"
	"parche_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up swipe and match routes under /api/swipes and
// /api/matches.
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.HandleFunc("/like", controller.Like).Methods("POST")
	swipeRouter.HandleFunc("/dislike", controller.Dislike).Methods("POST")

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.List).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.UpdateStatus).Methods("PATCH")
}
