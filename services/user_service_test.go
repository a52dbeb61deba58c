package services

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"parche_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pinPattern = regexp.MustCompile(`^[1-9][0-9]{3}$`)

func TestEnsureUserProvisionsOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	identity := Identity{UID: "alice", DisplayName: "Alice", Email: "alice@example.com", PhotoURL: "http://img/a.png"}
	user, err := env.users.EnsureUser(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Regexp(t, pinPattern, user.PIN)

	// A second sign-in returns the same record; the PIN never changes.
	again, err := env.users.EnsureUser(ctx, Identity{UID: "alice", DisplayName: "Alice Renamed"})
	require.NoError(t, err)
	assert.Equal(t, user.PIN, again.PIN)
	assert.Equal(t, "Alice", again.DisplayName)
}

func TestEnsureUserRequiresIdentity(t *testing.T) {
	env := newTestEnv()
	_, err := env.users.EnsureUser(context.Background(), Identity{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIssuedPINsAreUnique(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		user, err := env.users.EnsureUser(ctx, Identity{UID: fmt.Sprintf("user-%d", i)})
		require.NoError(t, err)
		require.Regexp(t, pinPattern, user.PIN)
		assert.False(t, seen[user.PIN], "PIN %s issued twice", user.PIN)
		seen[user.PIN] = true
	}
}

func TestPINIssuanceSurvivesExhaustedDirectory(t *testing.T) {
	// With (almost) every PIN taken, all five draws collide and the last
	// draw is accepted anyway. That optimistic acceptance is documented
	// behavior, not a bug: provisioning must still succeed.
	env := newTestEnv()
	ctx := context.Background()
	for pin := 1000; pin <= 9998; pin++ {
		uid := fmt.Sprintf("seed-%d", pin)
		user := models.User{UID: uid, PIN: fmt.Sprintf("%d", pin), Role: models.RoleUser}
		require.NoError(t, env.store.Set(ctx, models.UsersCollection, uid, user.Document(), false))
	}

	user, err := env.users.EnsureUser(ctx, Identity{UID: "latecomer"})
	require.NoError(t, err)
	assert.Regexp(t, pinPattern, user.PIN)
}

func TestFindByPIN(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice", "4821", models.RoleUser)

	user, err := env.users.FindByPIN(ctx, "4821")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UID)

	_, err = env.users.FindByPIN(ctx, "9999")
	assert.ErrorIs(t, err, ErrPINNotFound)
}

func TestToggleInterestRoundTrips(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice", "4821", models.RoleUser)

	interests, err := env.users.ToggleInterest(ctx, "alice", "gastronomía")
	require.NoError(t, err)
	assert.Equal(t, []string{"gastronomía"}, interests)

	interests, err = env.users.ToggleInterest(ctx, "alice", "aventura")
	require.NoError(t, err)
	assert.Equal(t, []string{"gastronomía", "aventura"}, interests)

	interests, err = env.users.ToggleInterest(ctx, "alice", "gastronomía")
	require.NoError(t, err)
	assert.Equal(t, []string{"aventura"}, interests)

	_, err = env.users.ToggleInterest(ctx, "", "aventura")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIsAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice", "4821", models.RoleAdmin)
	env.seedUser(t, "bob", "Bob", "7733", models.RoleUser)

	isAdmin, err := env.users.IsAdmin(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = env.users.IsAdmin(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = env.users.IsAdmin(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
