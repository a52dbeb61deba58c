package controllers

import (
	"net/http"

	"parche_server/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for identity and profile actions.
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// EnsureUser provisions the signed-in identity on first use and returns the
// user record (with its PIN) either way.
func (uc *UserController) EnsureUser(w http.ResponseWriter, r *http.Request) {
	var identity services.Identity
	if !decodeBody(w, r, &identity) {
		return
	}
	// The identity-aware proxy is the authority on who is calling.
	identity.UID = actingUser(r)

	user, err := uc.UserService.EnsureUser(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUser fetches a user by uid.
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["userId"]
	user, err := uc.UserService.GetUser(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ToggleInterest adds or removes one interest tag on the caller's profile.
func (uc *UserController) ToggleInterest(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["userId"]
	if uid != actingUser(r) {
		writeError(w, services.ErrForbidden)
		return
	}

	var body struct {
		Tag string `json:"tag"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	interests, err := uc.UserService.ToggleInterest(r.Context(), uid, body.Tag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"interests": interests})
}
