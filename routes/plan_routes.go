package routes

import (
	"parche_server/controllers"
	"parche_server/services"

	"github.com/gorilla/mux"
)

// RegisterPlanRoutes sets up the swipe deck and admin plan routes under
// /api/plans.
func RegisterPlanRoutes(r *mux.Router, planService *services.PlanService) {
	controller := controllers.NewPlanController(planService)

	planRouter := r.PathPrefix("/api/plans").Subrouter()
	planRouter.HandleFunc("", controller.ListVisible).Methods("GET")
	planRouter.HandleFunc("/admin", controller.ListAll).Methods("GET")
	planRouter.HandleFunc("/admin", controller.Create).Methods("POST")
	planRouter.HandleFunc("/admin/import", controller.BulkImport).Methods("POST")
	planRouter.HandleFunc("/admin/{planId}", controller.Update).Methods("PUT")
	planRouter.HandleFunc("/admin/{planId}", controller.Delete).Methods("DELETE")
}
