package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"parche_server/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PlanInput is the payload shape for creating, updating, and bulk-importing
// plans. It matches the DatePlan wire shape minus the id.
type PlanInput struct {
	Title          string            `json:"title" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Category       string            `json:"category" validate:"required"`
	Duration       string            `json:"duration"`
	Cost           string            `json:"cost"`
	Image          string            `json:"image"`
	Active         bool              `json:"active"`
	BgGradient     string            `json:"bgGradient"`
	GoodForToday   bool              `json:"goodForToday"`
	City           string            `json:"city"`
	RelationTypes  models.StringList `json:"relationType"`
	ExperienceType string            `json:"experienceType"`
	ExpiresAt      string            `json:"expiresAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00|datetime=2006-01-02"`
}

func (in PlanInput) plan() models.DatePlan {
	return models.DatePlan{
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Duration:       in.Duration,
		Cost:           in.Cost,
		Image:          in.Image,
		Active:         in.Active,
		BgGradient:     in.BgGradient,
		GoodForToday:   in.GoodForToday,
		City:           in.City,
		RelationTypes:  []string(in.RelationTypes),
		ExperienceType: in.ExperienceType,
		ExpiresAt:      in.ExpiresAt,
	}
}

// PlanService handles plan visibility for the swipe deck and the admin-gated
// plan administration.
type PlanService struct {
	Store DocumentStore
	Users *UserService
}

// NewPlanService creates a plan service.
func NewPlanService(store DocumentStore, users *UserService) *PlanService {
	return &PlanService{Store: store, Users: users}
}

func (ps *PlanService) allPlans(ctx context.Context) ([]models.DatePlan, error) {
	stored, err := ps.Store.Query(ctx, models.DatePlansCollection, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	plans := []models.DatePlan{}
	for _, s := range stored {
		plan, err := models.PlanFromDocument(s.ID, s.Fields)
		if err != nil {
			log.Printf("skipping malformed plan %s: %v", s.ID, err)
			continue
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

// interactedPlanIDs collects the plan ids the (actor, companion) pair has
// already swiped on or matched over. The matches collection is filtered in
// code; the store boundary only promises equality predicates.
func (ps *PlanService) interactedPlanIDs(ctx context.Context, actorID, companionID string) (map[string]bool, error) {
	ids := map[string]bool{}

	likes, err := ps.Store.Query(ctx, models.LikesCollection, map[string]interface{}{
		"userId":      actorID,
		"companionId": companionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}
	for _, s := range likes {
		ids[models.PreferenceFromDocument(s.Fields).DateID] = true
	}

	stored, err := ps.Store.Query(ctx, models.MatchesCollection, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	for _, s := range stored {
		match, err := models.MatchFromDocument(s.ID, s.Fields)
		if err != nil {
			continue
		}
		if match.Involves(actorID) && match.Involves(companionID) {
			ids[match.DateID] = true
		}
	}
	return ids, nil
}

// ListVisible returns the plans the caller may swipe on: active, unexpired,
// solo-only for anonymous callers, and not already swiped on or matched over
// by the given pair. Ordering carries no contract; the handler shuffles.
func (ps *PlanService) ListVisible(ctx context.Context, actorID, companionID string) ([]models.DatePlan, error) {
	plans, err := ps.allPlans(ctx)
	if err != nil {
		return nil, err
	}

	var interacted map[string]bool
	if actorID != "" && companionID != "" {
		interacted, err = ps.interactedPlanIDs(ctx, actorID, companionID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	visible := []models.DatePlan{}
	for _, plan := range plans {
		if !plan.Active || plan.Expired(now) {
			continue
		}
		if actorID == "" && !plan.HasRelation(models.RelationTypeSolo) {
			continue
		}
		if interacted != nil && interacted[plan.ID] {
			continue
		}
		visible = append(visible, plan)
	}
	return visible, nil
}

// requireAdmin checks the actor's role in the store before any plan write.
func (ps *PlanService) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	isAdmin, err := ps.Users.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrForbidden
	}
	return nil
}

// ListAll returns every plan, including inactive and expired ones, for the
// admin surface.
func (ps *PlanService) ListAll(ctx context.Context, actorID string) ([]models.DatePlan, error) {
	if err := ps.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return ps.allPlans(ctx)
}

// Create adds a plan.
func (ps *PlanService) Create(ctx context.Context, actorID string, input PlanInput) (*models.DatePlan, error) {
	if err := ps.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	plan := input.plan()
	id, err := ps.Store.Add(ctx, models.DatePlansCollection, plan.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	plan.ID = id
	log.Printf("Plan created: %s (%s)", plan.Title, id)
	return &plan, nil
}

// Update replaces a plan wholesale, re-encoding through the model so the
// stored shape is always the current one.
func (ps *PlanService) Update(ctx context.Context, actorID, planID string, input PlanInput) (*models.DatePlan, error) {
	if err := ps.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	existing, err := ps.Store.Get(ctx, models.DatePlansCollection, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}
	if existing == nil {
		return nil, ErrPlanNotFound
	}

	plan := input.plan()
	plan.ID = planID
	if err := ps.Store.Set(ctx, models.DatePlansCollection, planID, plan.Document(), false); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return &plan, nil
}

// Delete removes a plan record. Likes and matches referencing it are kept;
// they are history.
func (ps *PlanService) Delete(ctx context.Context, actorID, planID string) error {
	if err := ps.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	existing, err := ps.Store.Get(ctx, models.DatePlansCollection, planID)
	if err != nil {
		return fmt.Errorf("failed to fetch plan: %w", err)
	}
	if existing == nil {
		return ErrPlanNotFound
	}
	if err := ps.Store.Delete(ctx, models.DatePlansCollection, planID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}

// BulkImport parses a JSON array of plan shapes and writes them in one batch.
// Any invalid entry rejects the whole import before anything is written.
func (ps *PlanService) BulkImport(ctx context.Context, actorID string, raw []byte) (int, error) {
	if err := ps.requireAdmin(ctx, actorID); err != nil {
		return 0, err
	}

	var inputs []PlanInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return 0, fmt.Errorf("invalid import payload: %w", err)
	}

	docs := make([]models.Document, 0, len(inputs))
	for i, input := range inputs {
		if err := validate.Struct(input); err != nil {
			return 0, fmt.Errorf("invalid plan at index %d: %w", i, err)
		}
		docs = append(docs, input.plan().Document())
	}

	if _, err := ps.Store.AddMany(ctx, models.DatePlansCollection, docs); err != nil {
		return 0, fmt.Errorf("failed to import plans: %w", err)
	}
	log.Printf("Imported %d plans", len(docs))
	return len(docs), nil
}
