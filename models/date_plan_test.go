package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFromDocumentNormalizesLegacyRelationType(t *testing.T) {
	// Current shape: a list.
	plan, err := PlanFromDocument("p1", Document{
		"title": "Cena", "active": true,
		"relationType": []interface{}{"pareja", "amigo"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pareja", "amigo"}, plan.RelationTypes)

	// Legacy shape: a bare string.
	plan, err = PlanFromDocument("p2", Document{
		"title": "Caminata", "active": true,
		"relationType": "solo",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, plan.RelationTypes)

	// Absent is fine.
	plan, err = PlanFromDocument("p3", Document{"title": "Museo", "active": true})
	require.NoError(t, err)
	assert.Empty(t, plan.RelationTypes)

	// Junk shapes are an error, never trusted silently.
	_, err = PlanFromDocument("p4", Document{"title": "Roto", "relationType": 42.0})
	assert.Error(t, err)
	_, err = PlanFromDocument("p5", Document{"title": "Roto", "relationType": []interface{}{1.0}})
	assert.Error(t, err)
}

func TestPlanExpiry(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.False(t, DatePlan{}.Expired(now), "no expiry means never expired")
	assert.False(t, DatePlan{ExpiresAt: "2026-08-29T12:00:01Z"}.Expired(now))
	assert.True(t, DatePlan{ExpiresAt: "2026-08-29T12:00:00Z"}.Expired(now))
	assert.True(t, DatePlan{ExpiresAt: "2020-01-01T00:00:00Z"}.Expired(now))

	// Date-only values from the older admin form.
	assert.False(t, DatePlan{ExpiresAt: "2026-08-30"}.Expired(now))
	assert.True(t, DatePlan{ExpiresAt: "2026-08-29"}.Expired(now), "a bare date expires at its midnight")

	// Unparseable timestamps fail closed.
	assert.True(t, DatePlan{ExpiresAt: "mañana"}.Expired(now))
}

func TestPlanAllowsRelation(t *testing.T) {
	assert.True(t, DatePlan{}.AllowsRelation("pareja"), "no relation types means any signed-in context")
	assert.True(t, DatePlan{RelationTypes: []string{"pareja", "amigo"}}.AllowsRelation("amigo"))
	assert.False(t, DatePlan{RelationTypes: []string{"pareja"}}.AllowsRelation("solo"))
}

func TestPlanHasRelation(t *testing.T) {
	assert.False(t, DatePlan{}.HasRelation("solo"), "an untyped plan matches nothing explicitly")
	assert.True(t, DatePlan{RelationTypes: []string{"solo", "amigo"}}.HasRelation("solo"))
	assert.False(t, DatePlan{RelationTypes: []string{"pareja"}}.HasRelation("solo"))
}

func TestPlanDocumentRoundTrip(t *testing.T) {
	plan := DatePlan{
		ID: "p1", Title: "Cena", Description: "d", Category: "c",
		Active: true, RelationTypes: []string{"pareja"}, ExpiresAt: "2030-01-01",
	}
	decoded, err := PlanFromDocument("p1", plan.Document())
	require.NoError(t, err)
	assert.Equal(t, &plan, decoded)

	// Optional fields stay off the document entirely when unset.
	doc := DatePlan{Title: "Solo plan"}.Document()
	assert.NotContains(t, doc, "city")
	assert.NotContains(t, doc, "relationType")
	assert.NotContains(t, doc, "expiresAt")
}

func TestStringListJSON(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"pareja"`), &l))
	assert.Equal(t, StringList{"pareja"}, l)

	require.NoError(t, json.Unmarshal([]byte(`["pareja","amigo"]`), &l))
	assert.Equal(t, StringList{"pareja", "amigo"}, l)

	require.NoError(t, json.Unmarshal([]byte(`""`), &l))
	assert.Nil(t, l)

	assert.Error(t, json.Unmarshal([]byte(`42`), &l))

	out, err := json.Marshal(StringList{"solo"})
	require.NoError(t, err)
	assert.JSONEq(t, `["solo"]`, string(out))
}
