package models

// Connection is an undirected pairing between two users, each side carrying
// its own relation label. Rows are never hard-deleted; a disconnect only
// transitions status to blocked so history survives.
type Connection struct {
	ID            string `dynamodbav:"id" json:"id"`
	User1         string `dynamodbav:"user1" json:"user1"`
	User2         string `dynamodbav:"user2" json:"user2"`
	User1Name     string `dynamodbav:"user1Name" json:"user1Name"`
	User2Name     string `dynamodbav:"user2Name" json:"user2Name"`
	User1Relation string `dynamodbav:"user1Relation" json:"user1Relation"`
	User2Relation string `dynamodbav:"user2Relation" json:"user2Relation"`
	Status        string `dynamodbav:"status" json:"status"`
	CreatedAt     int64  `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     int64  `dynamodbav:"updatedAt" json:"updatedAt"`
	CreatedBy     string `dynamodbav:"createdBy" json:"createdBy"`
}

// ConnectionView is a connection projected from one participant's
// perspective, the shape the SPA's friends list renders.
type ConnectionView struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

// Other returns the counterpart of uid in the pair, or "" when uid is not a
// participant.
func (c Connection) Other(uid string) string {
	switch uid {
	case c.User1:
		return c.User2
	case c.User2:
		return c.User1
	}
	return ""
}

// ViewFor projects the connection from uid's perspective. The relation shown
// is the label recorded for uid's side of the pair.
func (c Connection) ViewFor(uid string) ConnectionView {
	if uid == c.User1 {
		return ConnectionView{UID: c.User2, Name: c.User2Name, Relation: c.User1Relation}
	}
	return ConnectionView{UID: c.User1, Name: c.User1Name, Relation: c.User2Relation}
}

// Document encodes the connection for the store boundary.
func (c Connection) Document() Document {
	return Document{
		"user1":         c.User1,
		"user2":         c.User2,
		"user1Name":     c.User1Name,
		"user2Name":     c.User2Name,
		"user1Relation": c.User1Relation,
		"user2Relation": c.User2Relation,
		"status":        c.Status,
		"createdAt":     c.CreatedAt,
		"updatedAt":     c.UpdatedAt,
		"createdBy":     c.CreatedBy,
	}
}

// ConnectionFromDocument decodes a stored connection.
func ConnectionFromDocument(id string, doc Document) *Connection {
	return &Connection{
		ID:            id,
		User1:         DocString(doc, "user1"),
		User2:         DocString(doc, "user2"),
		User1Name:     DocString(doc, "user1Name"),
		User2Name:     DocString(doc, "user2Name"),
		User1Relation: DocString(doc, "user1Relation"),
		User2Relation: DocString(doc, "user2Relation"),
		Status:        DocString(doc, "status"),
		CreatedAt:     DocInt64(doc, "createdAt"),
		UpdatedAt:     DocInt64(doc, "updatedAt"),
		CreatedBy:     DocString(doc, "createdBy"),
	}
}
