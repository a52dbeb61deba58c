package models

import (
	"sort"
	"strings"
)

// Match is the record created when both sides of a pair liked the same plan.
// The doc id is derived from the sorted pair plus the plan id, so concurrent
// create-if-absent writes land on the same document.
type Match struct {
	ID         string   `dynamodbav:"id" json:"id"`
	Users      []string `dynamodbav:"users" json:"users"`
	DateID     string   `dynamodbav:"dateId" json:"dateId"`
	CreatedAt  int64    `dynamodbav:"createdAt" json:"createdAt"`
	PlannedFor string   `dynamodbav:"plannedFor" json:"plannedFor"`
	Status     string   `dynamodbav:"status" json:"status"`
}

// MatchView is a match enriched with plan and partner data for presentation.
type MatchView struct {
	Match
	PlanTitle    string `json:"planTitle"`
	PlanImage    string `json:"planImage"`
	PlanCategory string `json:"planCategory"`
	PartnerID    string `json:"partnerId"`
	PartnerName  string `json:"partnerName"`
}

// MatchID derives the canonical match doc id for an unordered user pair and a
// plan: the sorted uids joined with the plan id.
func MatchID(userA, userB, dateID string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join([]string{pair[0], pair[1], dateID}, "_")
}

// Involves reports whether uid is one of the match participants.
func (m Match) Involves(uid string) bool {
	for _, u := range m.Users {
		if u == uid {
			return true
		}
	}
	return false
}

// Other returns the participant that is not uid, or "" when uid is not a
// participant or the match is solo-shaped.
func (m Match) Other(uid string) string {
	for _, u := range m.Users {
		if u != uid {
			return u
		}
	}
	return ""
}

// Document encodes the match for the store boundary.
func (m Match) Document() Document {
	return Document{
		"users":      m.Users,
		"dateId":     m.DateID,
		"createdAt":  m.CreatedAt,
		"plannedFor": m.PlannedFor,
		"status":     m.Status,
	}
}

// MatchFromDocument decodes a stored match. Matches written before the status
// field existed default to pending.
func MatchFromDocument(id string, doc Document) (*Match, error) {
	users, err := DocStringList(doc, "users")
	if err != nil {
		return nil, err
	}
	m := &Match{
		ID:         id,
		Users:      users,
		DateID:     DocString(doc, "dateId"),
		CreatedAt:  DocInt64(doc, "createdAt"),
		PlannedFor: DocString(doc, "plannedFor"),
		Status:     DocString(doc, "status"),
	}
	if m.Status == "" {
		m.Status = MatchPending
	}
	return m, nil
}
