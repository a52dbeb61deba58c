package controllers

import (
	"net/http"

	"parche_server/services"

	"github.com/gorilla/mux"
)

// ConnectionController handles HTTP requests for the pairing flow.
type ConnectionController struct {
	ConnectionService *services.ConnectionService
}

// NewConnectionController creates a new ConnectionController instance.
func NewConnectionController(connectionService *services.ConnectionService) *ConnectionController {
	return &ConnectionController{ConnectionService: connectionService}
}

// Connect pairs the caller with the holder of the submitted PIN.
func (cc *ConnectionController) Connect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PIN      string `json:"pin"`
		Relation string `json:"relation"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Relation == "" {
		body.Relation = "amigo"
	}

	conn, err := cc.ConnectionService.ConnectByPIN(r.Context(), actingUser(r), body.PIN, body.Relation)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conn)
}

// List returns the caller's accepted connections.
func (cc *ConnectionController) List(w http.ResponseWriter, r *http.Request) {
	views, err := cc.ConnectionService.ListConnections(r.Context(), actingUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"connections": views})
}

// Disconnect blocks the connection between the caller and the given user.
func (cc *ConnectionController) Disconnect(w http.ResponseWriter, r *http.Request) {
	otherID := mux.Vars(r)["otherUserId"]
	if err := cc.ConnectionService.Disconnect(r.Context(), actingUser(r), otherID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Connection removed"})
}
