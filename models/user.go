package models

// User is an identity record. The doc id is the identity provider's uid. The
// pin is immutable once assigned. connections/relationships are denormalized
// companion data maintained by the connection flow.
type User struct {
	UID           string            `dynamodbav:"uid" json:"uid"`
	DisplayName   string            `dynamodbav:"displayName" json:"displayName"`
	Email         string            `dynamodbav:"email" json:"email"`
	PhotoURL      string            `dynamodbav:"photoURL" json:"photoURL"`
	PIN           string            `dynamodbav:"pin" json:"pin"`
	Role          string            `dynamodbav:"role" json:"role"`
	Connections   []string          `dynamodbav:"connections" json:"connections"`
	Relationships map[string]string `dynamodbav:"relationships" json:"relationships"`
	Interests     []string          `dynamodbav:"interests" json:"interests"`
}

// Document encodes the user for the store boundary.
func (u User) Document() Document {
	connections := u.Connections
	if connections == nil {
		connections = []string{}
	}
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	relationships := u.Relationships
	if relationships == nil {
		relationships = map[string]string{}
	}
	return Document{
		"uid":           u.UID,
		"displayName":   u.DisplayName,
		"email":         u.Email,
		"photoURL":      u.PhotoURL,
		"pin":           u.PIN,
		"role":          u.Role,
		"connections":   connections,
		"relationships": relationships,
		"interests":     interests,
	}
}

// UserFromDocument decodes a stored user. Legacy user docs predate the
// interests and relationships fields, so both may be absent.
func UserFromDocument(id string, doc Document) (*User, error) {
	connections, err := DocStringList(doc, "connections")
	if err != nil {
		return nil, err
	}
	interests, err := DocStringList(doc, "interests")
	if err != nil {
		return nil, err
	}
	u := &User{
		UID:           id,
		DisplayName:   DocString(doc, "displayName"),
		Email:         DocString(doc, "email"),
		PhotoURL:      DocString(doc, "photoURL"),
		PIN:           DocString(doc, "pin"),
		Role:          DocString(doc, "role"),
		Connections:   connections,
		Relationships: DocStringMap(doc, "relationships"),
		Interests:     interests,
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u, nil
}
