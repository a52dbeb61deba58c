package services

import (
	"context"
	"testing"

	"parche_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoupleFlow walks the whole happy path: pairing by PIN, both sides
// seeing the plan, reciprocal likes producing exactly one pending match, and
// the plan dropping out of the pair's deck afterwards.
func TestCoupleFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedUser(t, "ana", "Ana", "4821", models.RoleUser)
	env.seedUser(t, "berto", "Berto", "5910", models.RoleUser)

	planID := env.seedPlan(t, models.DatePlan{
		Title:         "Cena romántica",
		Description:   "Cena a la luz de las velas",
		Category:      "gastronomía",
		Active:        true,
		RelationTypes: []string{"pareja"},
	})

	// Berto connects to Ana via her PIN.
	conn, err := env.connections.ConnectByPIN(ctx, "berto", "4821", "pareja")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionAccepted, conn.Status)

	// Both see the plan in their deck for this companion.
	for _, pair := range [][2]string{{"ana", "berto"}, {"berto", "ana"}} {
		plans, err := env.plans.ListVisible(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, []string{planID}, planIDs(plans))
	}

	// Ana likes first: no match yet.
	result, err := env.matches.RecordLike(ctx, "ana", "berto", planID)
	require.NoError(t, err)
	assert.False(t, result.HasMatch)

	// Berto's like completes the pair.
	result, err = env.matches.RecordLike(ctx, "berto", "ana", planID)
	require.NoError(t, err)
	assert.True(t, result.HasMatch)
	assert.True(t, result.IsNewMatch)

	doc, err := env.store.Get(ctx, models.MatchesCollection, models.MatchID("ana", "berto", planID))
	require.NoError(t, err)
	require.NotNil(t, doc)
	match, err := models.MatchFromDocument("", doc)
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, match.Status)
	assert.ElementsMatch(t, []string{"ana", "berto"}, match.Users)

	// A repeat like reports the match without minting a second one.
	result, err = env.matches.RecordLike(ctx, "berto", "ana", planID)
	require.NoError(t, err)
	assert.True(t, result.HasMatch)
	assert.False(t, result.IsNewMatch)
	assert.Equal(t, 1, env.matchCount(t))

	// The matched plan left both decks.
	for _, pair := range [][2]string{{"ana", "berto"}, {"berto", "ana"}} {
		plans, err := env.plans.ListVisible(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.Empty(t, plans)
	}
}
