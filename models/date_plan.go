package models

import "time"

// DatePlan is a plan suggestion card. Created and edited only by admins, read
// by everyone, filtered at read time by active/expiry/relation type.
//
// relationType has drifted between a scalar string and a string list across
// admin-form iterations; the current shape is a list and the decoder accepts
// both (see PlanFromDocument).
type DatePlan struct {
	ID             string   `dynamodbav:"id" json:"id"`
	Title          string   `dynamodbav:"title" json:"title"`
	Description    string   `dynamodbav:"description" json:"description"`
	Category       string   `dynamodbav:"category" json:"category"`
	Duration       string   `dynamodbav:"duration" json:"duration"`
	Cost           string   `dynamodbav:"cost" json:"cost"`
	Image          string   `dynamodbav:"image" json:"image"`
	Active         bool     `dynamodbav:"active" json:"active"`
	BgGradient     string   `dynamodbav:"bgGradient" json:"bgGradient"`
	GoodForToday   bool     `dynamodbav:"goodForToday" json:"goodForToday"`
	City           string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	RelationTypes  []string `dynamodbav:"relationType,omitempty" json:"relationType,omitempty"`
	ExperienceType string   `dynamodbav:"experienceType,omitempty" json:"experienceType,omitempty"`
	ExpiresAt      string   `dynamodbav:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Expired reports whether the plan's expiry timestamp is set and in the past
// relative to now. An unparseable expiresAt counts as expired rather than
// letting a malformed record live forever.
func (p DatePlan) Expired(now time.Time) bool {
	if p.ExpiresAt == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, p.ExpiresAt)
	if err != nil {
		// The admin form also wrote bare dates for a while.
		t, err = time.Parse("2006-01-02", p.ExpiresAt)
		if err != nil {
			return true
		}
	}
	return !t.After(now)
}

// AllowsRelation reports whether the plan applies to the given relation type.
// A plan with no relation types applies to any signed-in context.
func (p DatePlan) AllowsRelation(relationType string) bool {
	if len(p.RelationTypes) == 0 {
		return true
	}
	return p.HasRelation(relationType)
}

// HasRelation reports whether the relation type is explicitly listed on the
// plan. Unlike AllowsRelation, an empty list matches nothing.
func (p DatePlan) HasRelation(relationType string) bool {
	for _, rt := range p.RelationTypes {
		if rt == relationType {
			return true
		}
	}
	return false
}

// Document encodes the plan for the store boundary.
func (p DatePlan) Document() Document {
	doc := Document{
		"title":        p.Title,
		"description":  p.Description,
		"category":     p.Category,
		"duration":     p.Duration,
		"cost":         p.Cost,
		"image":        p.Image,
		"active":       p.Active,
		"bgGradient":   p.BgGradient,
		"goodForToday": p.GoodForToday,
	}
	if p.City != "" {
		doc["city"] = p.City
	}
	if len(p.RelationTypes) > 0 {
		doc["relationType"] = p.RelationTypes
	}
	if p.ExperienceType != "" {
		doc["experienceType"] = p.ExperienceType
	}
	if p.ExpiresAt != "" {
		doc["expiresAt"] = p.ExpiresAt
	}
	return doc
}

// PlanFromDocument decodes a stored plan, normalizing the legacy scalar
// relationType shape into a list.
func PlanFromDocument(id string, doc Document) (*DatePlan, error) {
	relationTypes, err := DocStringList(doc, "relationType")
	if err != nil {
		return nil, err
	}
	return &DatePlan{
		ID:             id,
		Title:          DocString(doc, "title"),
		Description:    DocString(doc, "description"),
		Category:       DocString(doc, "category"),
		Duration:       DocString(doc, "duration"),
		Cost:           DocString(doc, "cost"),
		Image:          DocString(doc, "image"),
		Active:         DocBool(doc, "active"),
		BgGradient:     DocString(doc, "bgGradient"),
		GoodForToday:   DocBool(doc, "goodForToday"),
		City:           DocString(doc, "city"),
		RelationTypes:  relationTypes,
		ExperienceType: DocString(doc, "experienceType"),
		ExpiresAt:      DocString(doc, "expiresAt"),
	}, nil
}
