package services

import (
	"context"

	"parche_server/models"
)

// StoredDocument is a queried record together with its doc id.
type StoredDocument struct {
	ID     string
	Fields models.Document
}

// DocumentStore is the boundary to the hosted document database.
// Get returns (nil, nil) for a missing document; absence is not an error.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (models.Document, error)
	Query(ctx context.Context, collection string, equals map[string]interface{}) ([]StoredDocument, error)
	Set(ctx context.Context, collection, id string, fields models.Document, merge bool) error
	Add(ctx context.Context, collection string, fields models.Document) (string, error)
	AddMany(ctx context.Context, collection string, fields []models.Document) ([]string, error)
	Update(ctx context.Context, collection, id string, fields models.Document) error
	Delete(ctx context.Context, collection, id string) error
}
