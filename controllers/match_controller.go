package controllers

import (
	"net/http"

	"parche_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for swipes and matches.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance.
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

type swipeRequest struct {
	CompanionID string `json:"companionId"`
	DateID      string `json:"dateId"`
}

// Like records a like and reports the reconciliation outcome.
func (mc *MatchController) Like(w http.ResponseWriter, r *http.Request) {
	var body swipeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.DateID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dateId is required"})
		return
	}

	result, err := mc.MatchService.RecordLike(r.Context(), actingUser(r), body.CompanionID, body.DateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Dislike records a dislike. It never touches an existing match.
func (mc *MatchController) Dislike(w http.ResponseWriter, r *http.Request) {
	var body swipeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.DateID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dateId is required"})
		return
	}

	if err := mc.MatchService.RecordDislike(r.Context(), actingUser(r), body.CompanionID, body.DateID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Preference saved"})
}

// List returns the caller's matches enriched with plan and partner data.
func (mc *MatchController) List(w http.ResponseWriter, r *http.Request) {
	matches, err := mc.MatchService.ListMatches(r.Context(), actingUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// UpdateStatus advances a match's lifecycle (confirm, complete, cancel) and
// optionally sets the planned-for date.
func (mc *MatchController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status     string  `json:"status"`
		PlannedFor *string `json:"plannedFor"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	matchID := mux.Vars(r)["matchId"]
	err := mc.MatchService.UpdateMatchStatus(r.Context(), actingUser(r), matchID, body.Status, body.PlannedFor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Match updated"})
}
