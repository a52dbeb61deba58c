package models

import "strings"

// PreferenceEvent records one user's like or dislike of a plan, scoped to a
// companion context. The doc id is derived from the key tuple so a later
// swipe on the same (user, companion, plan) overwrites the earlier one.
type PreferenceEvent struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	DateID      string `dynamodbav:"dateId" json:"dateId"`
	CompanionID string `dynamodbav:"companionId" json:"companionId"`
	Liked       bool   `dynamodbav:"liked" json:"liked"`
	CreatedAt   int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// PreferenceID derives the deterministic doc id for a (user, companion, plan)
// key tuple. Concurrent writes to the same tuple land on the same document.
func PreferenceID(userID, companionID, dateID string) string {
	return strings.Join([]string{userID, companionID, dateID}, "_")
}

// Document encodes the event for the store boundary.
func (e PreferenceEvent) Document() Document {
	return Document{
		"userId":      e.UserID,
		"dateId":      e.DateID,
		"companionId": e.CompanionID,
		"liked":       e.Liked,
		"createdAt":   e.CreatedAt,
	}
}

// PreferenceFromDocument decodes a stored event. Legacy likes predate the
// companionId field; a missing companion means the like was solo-scoped.
func PreferenceFromDocument(doc Document) *PreferenceEvent {
	e := &PreferenceEvent{
		UserID:      DocString(doc, "userId"),
		DateID:      DocString(doc, "dateId"),
		CompanionID: DocString(doc, "companionId"),
		Liked:       DocBool(doc, "liked"),
		CreatedAt:   DocInt64(doc, "createdAt"),
	}
	if e.CompanionID == "" {
		e.CompanionID = e.UserID
	}
	return e
}
