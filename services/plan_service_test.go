package services

import (
	"context"
	"testing"
	"time"

	"parche_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planIDs(plans []models.DatePlan) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.ID)
	}
	return out
}

func TestListVisibleFiltersActiveAndExpiry(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice", "1111", models.RoleUser)

	visible := env.seedPlan(t, models.DatePlan{Title: "Vigente", Active: true})
	env.seedPlan(t, models.DatePlan{Title: "Inactivo", Active: false})
	// Expired plans are invisible no matter what the active flag says.
	env.seedPlan(t, models.DatePlan{
		Title:     "Vencido",
		Active:    true,
		ExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	future := env.seedPlan(t, models.DatePlan{
		Title:     "Por vencer",
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	plans, err := env.plans.ListVisible(ctx, "alice", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{visible, future}, planIDs(plans))
}

func TestListVisibleAnonymousSeesSoloOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	solo := env.seedPlan(t, models.DatePlan{Title: "Solo", Active: true, RelationTypes: []string{models.RelationTypeSolo}})
	env.seedPlan(t, models.DatePlan{Title: "Pareja", Active: true, RelationTypes: []string{"pareja"}})
	env.seedPlan(t, models.DatePlan{Title: "Sin tipo", Active: true})

	plans, err := env.plans.ListVisible(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{solo}, planIDs(plans))
}

func TestListVisibleExcludesInteractedPlansPerPair(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "alice", "Alice", "1111", models.RoleUser)
	env.seedUser(t, "bob", "Bob", "2222", models.RoleUser)
	env.seedUser(t, "carol", "Carol", "3333", models.RoleUser)

	liked := env.seedPlan(t, models.DatePlan{Title: "Ya visto", Active: true})
	matched := env.seedPlan(t, models.DatePlan{Title: "Ya match", Active: true})
	fresh := env.seedPlan(t, models.DatePlan{Title: "Nuevo", Active: true})

	_, err := env.matches.RecordLike(ctx, "alice", "bob", liked)
	require.NoError(t, err)
	_, err = env.matches.RecordLike(ctx, "alice", "bob", matched)
	require.NoError(t, err)
	_, err = env.matches.RecordLike(ctx, "bob", "alice", matched)
	require.NoError(t, err)

	plans, err := env.plans.ListVisible(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, planIDs(plans))

	// The exclusion is scoped to the exact pair: with carol as companion the
	// same plans are fresh again.
	plans, err = env.plans.ListVisible(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{liked, matched, fresh}, planIDs(plans))
}

func TestAdminGateOnPlanWrites(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "admin", "Admin", "1111", models.RoleAdmin)
	env.seedUser(t, "bob", "Bob", "2222", models.RoleUser)

	input := PlanInput{Title: "Cena", Description: "Cena en casa", Category: "gastronomía", Active: true}

	_, err := env.plans.Create(ctx, "", input)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.plans.Create(ctx, "bob", input)
	assert.ErrorIs(t, err, ErrForbidden)

	plan, err := env.plans.Create(ctx, "admin", input)
	require.NoError(t, err)
	require.NotEmpty(t, plan.ID)

	_, err = env.plans.ListAll(ctx, "bob")
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := env.plans.ListAll(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlanUpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "admin", "Admin", "1111", models.RoleAdmin)

	plan, err := env.plans.Create(ctx, "admin", PlanInput{
		Title: "Cine", Description: "Función de medianoche", Category: "cultura", Active: true,
	})
	require.NoError(t, err)

	updated, err := env.plans.Update(ctx, "admin", plan.ID, PlanInput{
		Title: "Cine al parque", Description: "Función al aire libre", Category: "cultura",
		Active: true, RelationTypes: models.StringList{"pareja", "amigo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cine al parque", updated.Title)
	assert.Equal(t, []string{"pareja", "amigo"}, updated.RelationTypes)

	_, err = env.plans.Update(ctx, "admin", "missing", PlanInput{
		Title: "x", Description: "y", Category: "z",
	})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	require.NoError(t, env.plans.Delete(ctx, "admin", plan.ID))
	assert.ErrorIs(t, env.plans.Delete(ctx, "admin", plan.ID), ErrPlanNotFound)
}

func TestPlanValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "admin", "Admin", "1111", models.RoleAdmin)

	_, err := env.plans.Create(ctx, "admin", PlanInput{Title: "Sin descripción", Category: "x"})
	assert.Error(t, err)

	_, err = env.plans.Create(ctx, "admin", PlanInput{
		Title: "Fecha rota", Description: "d", Category: "c", ExpiresAt: "mañana",
	})
	assert.Error(t, err)

	// Both timestamp shapes the admin form has produced are accepted.
	for _, expiry := range []string{"2030-01-02", "2030-01-02T15:04:05Z"} {
		_, err = env.plans.Create(ctx, "admin", PlanInput{
			Title: "Fecha ok", Description: "d", Category: "c", Active: true, ExpiresAt: expiry,
		})
		require.NoError(t, err)
	}
}

func TestBulkImport(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedUser(t, "admin", "Admin", "1111", models.RoleAdmin)
	env.seedUser(t, "bob", "Bob", "2222", models.RoleUser)

	payload := []byte(`[
		{"title":"Cena romántica","description":"Cena a la luz de las velas","category":"gastronomía","active":true,"relationType":"pareja"},
		{"title":"Tarde de juegos","description":"Juegos de mesa","category":"hogar","active":true,"relationType":["amigo","pareja"]}
	]`)

	_, err := env.plans.BulkImport(ctx, "bob", payload)
	assert.ErrorIs(t, err, ErrForbidden)

	count, err := env.plans.BulkImport(ctx, "admin", payload)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := env.plans.ListAll(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// The scalar legacy relationType shape was normalized into a list.
	for _, plan := range all {
		assert.Contains(t, plan.RelationTypes, "pareja")
	}

	// One malformed entry rejects the whole import and writes nothing.
	bad := []byte(`[{"title":"ok","description":"d","category":"c"},{"title":"","description":"","category":""}]`)
	_, err = env.plans.BulkImport(ctx, "admin", bad)
	assert.Error(t, err)
	all, err = env.plans.ListAll(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.plans.BulkImport(ctx, "admin", []byte(`not json`))
	assert.Error(t, err)
}
