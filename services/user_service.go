package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"parche_server/models"
)

// Identity is what the upstream identity provider yields after sign-in.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// UserService handles identity provisioning, the PIN directory, and
// interest toggling.
type UserService struct {
	Store DocumentStore

	rng *rand.Rand
}

// NewUserService creates a user service over the given store.
func NewUserService(store DocumentStore) *UserService {
	return &UserService{
		Store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const pinAttempts = 5

// generatePIN draws a 4-digit PIN and checks it against the directory, up to
// pinAttempts times. The last draw is accepted even if still taken.
func (us *UserService) generatePIN(ctx context.Context) (string, error) {
	var pin string
	for i := 0; i < pinAttempts; i++ {
		pin = fmt.Sprintf("%d", 1000+us.rng.Intn(9000))
		holders, err := us.Store.Query(ctx, models.UsersCollection, map[string]interface{}{"pin": pin})
		if err != nil {
			return "", fmt.Errorf("failed to check PIN uniqueness: %w", err)
		}
		if len(holders) == 0 {
			return pin, nil
		}
		log.Printf("PIN %s already taken, redrawing (attempt %d/%d)", pin, i+1, pinAttempts)
	}
	return pin, nil
}

// EnsureUser provisions the identity on first sign-in: when the user doc
// already exists it is returned unchanged (the PIN is immutable), otherwise a
// fresh doc is created with a newly issued PIN and the default role.
func (us *UserService) EnsureUser(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.UID == "" {
		return nil, ErrUnauthenticated
	}

	doc, err := us.Store.Get(ctx, models.UsersCollection, identity.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if doc != nil {
		return models.UserFromDocument(identity.UID, doc)
	}

	pin, err := us.generatePIN(ctx)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UID:         identity.UID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		PhotoURL:    identity.PhotoURL,
		PIN:         pin,
		Role:        models.RoleUser,
	}
	if err := us.Store.Set(ctx, models.UsersCollection, identity.UID, user.Document(), false); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("Provisioned user %s with PIN %s", identity.UID, pin)
	return &user, nil
}

// GetUser retrieves a user by uid.
func (us *UserService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	doc, err := us.Store.Get(ctx, models.UsersCollection, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if doc == nil {
		return nil, ErrUserNotFound
	}
	return models.UserFromDocument(uid, doc)
}

// FindByPIN looks up the identity holding a PIN.
func (us *UserService) FindByPIN(ctx context.Context, pin string) (*models.User, error) {
	holders, err := us.Store.Query(ctx, models.UsersCollection, map[string]interface{}{"pin": pin})
	if err != nil {
		return nil, fmt.Errorf("failed to look up PIN: %w", err)
	}
	if len(holders) == 0 {
		return nil, ErrPINNotFound
	}
	return models.UserFromDocument(holders[0].ID, holders[0].Fields)
}

// ToggleInterest adds the tag to the user's interests when absent and
// removes it when present, returning the updated list.
func (us *UserService) ToggleInterest(ctx context.Context, uid, tag string) ([]string, error) {
	if uid == "" {
		return nil, ErrUnauthenticated
	}
	user, err := us.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	interests := make([]string, 0, len(user.Interests)+1)
	found := false
	for _, t := range user.Interests {
		if t == tag {
			found = true
			continue
		}
		interests = append(interests, t)
	}
	if !found {
		interests = append(interests, tag)
	}

	err = us.Store.Update(ctx, models.UsersCollection, uid, models.Document{"interests": interests})
	if err != nil {
		return nil, fmt.Errorf("failed to update interests: %w", err)
	}
	return interests, nil
}

// IsAdmin reports whether uid carries the admin role, read from the store on
// every call.
func (us *UserService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	user, err := us.GetUser(ctx, uid)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
