package controllers

import (
	"io"
	"math/rand"
	"net/http"

	"parche_server/services"

	"github.com/gorilla/mux"
)

// PlanController handles HTTP requests for the swipe deck and the admin plan
// surface.
type PlanController struct {
	PlanService *services.PlanService
}

// NewPlanController creates a new PlanController instance.
func NewPlanController(planService *services.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// ListVisible returns the plans the caller may swipe on, shuffled. Ordering
// carries no contract; the deck is presented in random order.
func (pc *PlanController) ListVisible(w http.ResponseWriter, r *http.Request) {
	companionID := r.URL.Query().Get("companionId")

	plans, err := pc.PlanService.ListVisible(r.Context(), actingUser(r), companionID)
	if err != nil {
		writeError(w, err)
		return
	}

	rand.Shuffle(len(plans), func(i, j int) {
		plans[i], plans[j] = plans[j], plans[i]
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

// ListAll returns every plan for the admin surface.
func (pc *PlanController) ListAll(w http.ResponseWriter, r *http.Request) {
	plans, err := pc.PlanService.ListAll(r.Context(), actingUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

// Create adds a plan.
func (pc *PlanController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.PlanInput
	if !decodeBody(w, r, &input) {
		return
	}
	plan, err := pc.PlanService.Create(r.Context(), actingUser(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// Update replaces a plan.
func (pc *PlanController) Update(w http.ResponseWriter, r *http.Request) {
	var input services.PlanInput
	if !decodeBody(w, r, &input) {
		return
	}
	plan, err := pc.PlanService.Update(r.Context(), actingUser(r), mux.Vars(r)["planId"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// Delete removes a plan.
func (pc *PlanController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.PlanService.Delete(r.Context(), actingUser(r), mux.Vars(r)["planId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plan deleted"})
}

// BulkImport accepts a JSON array of plan shapes.
func (pc *PlanController) BulkImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	count, err := pc.PlanService.BulkImport(r.Context(), actingUser(r), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"imported": count})
}
