package routes

import (
	"parche_server/controllers"
	"parche_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for identity and profile operations
// under /api/users.
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/users").Subrouter()
	userRouter.HandleFunc("/ensure", controller.EnsureUser).Methods("POST")
	userRouter.HandleFunc("/{userId}", controller.GetUser).Methods("GET")
	userRouter.HandleFunc("/{userId}/interests", controller.ToggleInterest).Methods("PATCH")
}
