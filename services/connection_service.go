package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"parche_server/models"
)

// ConnectionService handles PIN-based pairing and the connection registry.
type ConnectionService struct {
	Store DocumentStore
	Users *UserService
}

// NewConnectionService creates a connection service.
func NewConnectionService(store DocumentStore, users *UserService) *ConnectionService {
	return &ConnectionService{Store: store, Users: users}
}

// pairRows fetches all connection rows between two users, checking both
// orderings of the pair (the store only supports equality predicates).
func (cs *ConnectionService) pairRows(ctx context.Context, uidA, uidB string) ([]*models.Connection, error) {
	forward, err := cs.Store.Query(ctx, models.ConnectionsCollection, map[string]interface{}{
		"user1": uidA,
		"user2": uidB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	reverse, err := cs.Store.Query(ctx, models.ConnectionsCollection, map[string]interface{}{
		"user1": uidB,
		"user2": uidA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	var rows []*models.Connection
	for _, stored := range append(forward, reverse...) {
		rows = append(rows, models.ConnectionFromDocument(stored.ID, stored.Fields))
	}
	return rows, nil
}

// ConnectByPIN pairs the acting user with the holder of the given PIN. The
// connection is accepted immediately, with no mutual-approval step, and the
// same relation label is recorded on both sides.
func (cs *ConnectionService) ConnectByPIN(ctx context.Context, actorID, pin, relation string) (*models.Connection, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}

	other, err := cs.Users.FindByPIN(ctx, pin)
	if err != nil {
		return nil, err
	}
	if other.UID == actorID {
		return nil, ErrSelfConnection
	}

	rows, err := cs.pairRows(ctx, actorID, other.UID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		// Blocked rows are history, not a live connection; only a
		// non-blocked row counts as a duplicate.
		if row.Status != models.ConnectionBlocked {
			return nil, ErrDuplicateConnection
		}
	}

	actor, err := cs.Users.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	conn := models.Connection{
		User1:         actorID,
		User2:         other.UID,
		User1Name:     actor.DisplayName,
		User2Name:     other.DisplayName,
		User1Relation: relation,
		User2Relation: relation,
		Status:        models.ConnectionAccepted,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actorID,
	}
	id, err := cs.Store.Add(ctx, models.ConnectionsCollection, conn.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	conn.ID = id

	if err := cs.linkUsers(ctx, actor, other, relation); err != nil {
		// A failed denormalized write does not undo the pairing.
		log.Printf("failed to denormalize connection %s onto user docs: %v", id, err)
	}

	log.Printf("Connected %s and %s (%s)", actorID, other.UID, relation)
	return &conn, nil
}

// linkUsers maintains the denormalized connections[] and relationships{} on
// both user docs, which older SPA builds and the migration tooling read.
func (cs *ConnectionService) linkUsers(ctx context.Context, actor, other *models.User, relation string) error {
	if err := cs.Store.Update(ctx, models.UsersCollection, actor.UID, models.Document{
		"connections":   appendUnique(actor.Connections, other.UID),
		"relationships": withRelation(actor.Relationships, other.UID, relation),
	}); err != nil {
		return err
	}
	return cs.Store.Update(ctx, models.UsersCollection, other.UID, models.Document{
		"connections":   appendUnique(other.Connections, actor.UID),
		"relationships": withRelation(other.Relationships, actor.UID, relation),
	})
}

func appendUnique(list []string, v string) []string {
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(append([]string{}, list...), v)
}

func withRelation(m map[string]string, uid, relation string) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		out[k] = v
	}
	out[uid] = relation
	return out
}

func withoutRelation(m map[string]string, uid string) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		if k != uid {
			out[k] = v
		}
	}
	return out
}

func removeString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}

// ListConnections returns the actor's accepted connections projected from
// their perspective.
func (cs *ConnectionService) ListConnections(ctx context.Context, actorID string) ([]models.ConnectionView, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}

	asUser1, err := cs.Store.Query(ctx, models.ConnectionsCollection, map[string]interface{}{
		"user1":  actorID,
		"status": models.ConnectionAccepted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	asUser2, err := cs.Store.Query(ctx, models.ConnectionsCollection, map[string]interface{}{
		"user2":  actorID,
		"status": models.ConnectionAccepted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	views := []models.ConnectionView{}
	for _, stored := range append(asUser1, asUser2...) {
		conn := models.ConnectionFromDocument(stored.ID, stored.Fields)
		views = append(views, conn.ViewFor(actorID))
	}
	return views, nil
}

// Disconnect transitions the pair's connection to blocked. The row is kept
// for history; only the denormalized user-doc links are removed.
func (cs *ConnectionService) Disconnect(ctx context.Context, actorID, otherID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}

	rows, err := cs.pairRows(ctx, actorID, otherID)
	if err != nil {
		return err
	}
	var target *models.Connection
	for _, row := range rows {
		if row.Status != models.ConnectionBlocked {
			target = row
			break
		}
	}
	if target == nil {
		return ErrConnectionNotFound
	}

	err = cs.Store.Update(ctx, models.ConnectionsCollection, target.ID, models.Document{
		"status":    models.ConnectionBlocked,
		"updatedAt": time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to block connection: %w", err)
	}

	if err := cs.unlinkUsers(ctx, actorID, otherID); err != nil {
		log.Printf("failed to remove denormalized links for %s/%s: %v", actorID, otherID, err)
	}
	return nil
}

func (cs *ConnectionService) unlinkUsers(ctx context.Context, uidA, uidB string) error {
	a, err := cs.Users.GetUser(ctx, uidA)
	if err != nil {
		return err
	}
	b, err := cs.Users.GetUser(ctx, uidB)
	if err != nil {
		return err
	}
	if err := cs.Store.Update(ctx, models.UsersCollection, uidA, models.Document{
		"connections":   removeString(a.Connections, uidB),
		"relationships": withoutRelation(a.Relationships, uidB),
	}); err != nil {
		return err
	}
	return cs.Store.Update(ctx, models.UsersCollection, uidB, models.Document{
		"connections":   removeString(b.Connections, uidA),
		"relationships": withoutRelation(b.Relationships, uidA),
	})
}
