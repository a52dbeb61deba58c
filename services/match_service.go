package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"parche_server/models"
)

// MatchService is the match reconciler: it records preference events and
// decides, from two independently written likes, whether a match exists,
// creating the match record exactly once.
type MatchService struct {
	Store DocumentStore
	Users *UserService
}

// NewMatchService creates a match service.
func NewMatchService(store DocumentStore, users *UserService) *MatchService {
	return &MatchService{Store: store, Users: users}
}

// LikeResult reports the reconciliation outcome of a like.
type LikeResult struct {
	HasMatch   bool `json:"hasMatch"`
	IsNewMatch bool `json:"isNewMatch"`
}

// RecordLike merge-writes the actor's like for (companion, plan) and checks
// the reciprocal event. When both sides have liked, the match is created
// under its canonical id with status pending.
//
// Both sides may run this concurrently and each observe the other's like on
// its read; both then write the same match document at the same derived id,
// so the "at most one match per (pair, plan)" invariant holds without any
// lock or transaction. Do not replace the derived id with a random one.
func (ms *MatchService) RecordLike(ctx context.Context, actorID, companionID, dateID string) (*LikeResult, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	if companionID == "" {
		// No companion selected means the like is solo-scoped.
		companionID = actorID
	}

	event := models.PreferenceEvent{
		UserID:      actorID,
		DateID:      dateID,
		CompanionID: companionID,
		Liked:       true,
		CreatedAt:   time.Now().UnixMilli(),
	}
	eventID := models.PreferenceID(actorID, companionID, dateID)
	if err := ms.Store.Set(ctx, models.LikesCollection, eventID, event.Document(), true); err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}

	// Solo context never produces a match.
	if companionID == actorID {
		return &LikeResult{}, nil
	}

	reciprocalID := models.PreferenceID(companionID, actorID, dateID)
	reciprocalDoc, err := ms.Store.Get(ctx, models.LikesCollection, reciprocalID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reciprocal like: %w", err)
	}
	if reciprocalDoc == nil {
		return &LikeResult{}, nil
	}
	if reciprocal := models.PreferenceFromDocument(reciprocalDoc); !reciprocal.Liked {
		return &LikeResult{}, nil
	}

	matchID := models.MatchID(actorID, companionID, dateID)
	existing, err := ms.Store.Get(ctx, models.MatchesCollection, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing match: %w", err)
	}
	if existing != nil {
		return &LikeResult{HasMatch: true}, nil
	}

	match := models.Match{
		ID:         matchID,
		Users:      []string{actorID, companionID},
		DateID:     dateID,
		CreatedAt:  time.Now().UnixMilli(),
		PlannedFor: "",
		Status:     models.MatchPending,
	}
	// Canonical participant order, same as the id derivation.
	if match.Users[0] > match.Users[1] {
		match.Users[0], match.Users[1] = match.Users[1], match.Users[0]
	}
	if err := ms.Store.Set(ctx, models.MatchesCollection, matchID, match.Document(), true); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	log.Printf("Match created: %s", matchID)
	return &LikeResult{HasMatch: true, IsNewMatch: true}, nil
}

// RecordDislike merge-writes the actor's dislike. It has no further side
// effects; in particular it never retracts a match already created.
func (ms *MatchService) RecordDislike(ctx context.Context, actorID, companionID, dateID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if companionID == "" {
		companionID = actorID
	}

	event := models.PreferenceEvent{
		UserID:      actorID,
		DateID:      dateID,
		CompanionID: companionID,
		Liked:       false,
		CreatedAt:   time.Now().UnixMilli(),
	}
	eventID := models.PreferenceID(actorID, companionID, dateID)
	if err := ms.Store.Set(ctx, models.LikesCollection, eventID, event.Document(), true); err != nil {
		return fmt.Errorf("failed to record dislike: %w", err)
	}
	return nil
}

// ListMatches returns the actor's matches enriched with plan and partner
// data. Enrichment failures degrade to blank fields rather than failing the
// whole listing.
func (ms *MatchService) ListMatches(ctx context.Context, actorID string) ([]models.MatchView, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}

	stored, err := ms.Store.Query(ctx, models.MatchesCollection, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	views := []models.MatchView{}
	for _, s := range stored {
		match, err := models.MatchFromDocument(s.ID, s.Fields)
		if err != nil {
			log.Printf("skipping malformed match %s: %v", s.ID, err)
			continue
		}
		if !match.Involves(actorID) {
			continue
		}

		view := models.MatchView{Match: *match, PartnerID: match.Other(actorID)}
		if planDoc, err := ms.Store.Get(ctx, models.DatePlansCollection, match.DateID); err == nil && planDoc != nil {
			if plan, err := models.PlanFromDocument(match.DateID, planDoc); err == nil {
				view.PlanTitle = plan.Title
				view.PlanImage = plan.Image
				view.PlanCategory = plan.Category
			}
		}
		if view.PartnerID != "" {
			if partner, err := ms.Users.GetUser(ctx, view.PartnerID); err == nil {
				view.PartnerName = partner.DisplayName
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateMatchStatus advances a match's lifecycle. Only participants may do
// so; this is the single path that ever changes a match after creation.
func (ms *MatchService) UpdateMatchStatus(ctx context.Context, actorID, matchID, status string, plannedFor *string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if !models.ValidMatchStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidMatchStatus, status)
	}

	doc, err := ms.Store.Get(ctx, models.MatchesCollection, matchID)
	if err != nil {
		return fmt.Errorf("failed to fetch match: %w", err)
	}
	if doc == nil {
		return ErrMatchNotFound
	}
	match, err := models.MatchFromDocument(matchID, doc)
	if err != nil {
		return err
	}
	if !match.Involves(actorID) {
		return ErrForbidden
	}

	fields := models.Document{"status": status}
	if plannedFor != nil {
		fields["plannedFor"] = *plannedFor
	}
	if err := ms.Store.Update(ctx, models.MatchesCollection, matchID, fields); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return nil
}
