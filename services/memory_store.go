package services

import (
	"context"
	"reflect"
	"sync"

	"parche_server/models"

	"github.com/google/uuid"
)

// MemoryStore implements DocumentStore on in-process maps, for tests and
// local development. Safe for concurrent use.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]models.Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string]models.Document{}}
}

func (ms *MemoryStore) collection(name string) map[string]models.Document {
	c, ok := ms.collections[name]
	if !ok {
		c = map[string]models.Document{}
		ms.collections[name] = c
	}
	return c
}

// copyDocument deep-copies a document so callers never share memory with the
// store, mirroring a remote store's read/write boundary.
func copyDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.Document:
		return copyDocument(t)
	case map[string]interface{}:
		return copyDocument(models.Document(t))
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}

func (ms *MemoryStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	doc, ok := ms.collection(collection)[id]
	if !ok {
		return nil, nil
	}
	return copyDocument(doc), nil
}

func (ms *MemoryStore) Query(ctx context.Context, collection string, equals map[string]interface{}) ([]StoredDocument, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var results []StoredDocument
	for id, doc := range ms.collection(collection) {
		matched := true
		for field, want := range equals {
			if !reflect.DeepEqual(doc[field], want) {
				matched = false
				break
			}
		}
		if matched {
			results = append(results, StoredDocument{ID: id, Fields: copyDocument(doc)})
		}
	}
	return results, nil
}

func (ms *MemoryStore) Set(ctx context.Context, collection, id string, fields models.Document, merge bool) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c := ms.collection(collection)
	if merge {
		existing, ok := c[id]
		if !ok {
			existing = models.Document{}
		}
		for k, v := range fields {
			existing[k] = copyValue(v)
		}
		c[id] = existing
		return nil
	}
	c[id] = copyDocument(fields)
	return nil
}

func (ms *MemoryStore) Add(ctx context.Context, collection string, fields models.Document) (string, error) {
	id := uuid.New().String()
	if err := ms.Set(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

func (ms *MemoryStore) AddMany(ctx context.Context, collection string, fields []models.Document) ([]string, error) {
	ids := make([]string, 0, len(fields))
	for _, doc := range fields {
		id, err := ms.Add(ctx, collection, doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (ms *MemoryStore) Update(ctx context.Context, collection, id string, fields models.Document) error {
	return ms.Set(ctx, collection, id, fields, true)
}

func (ms *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.collection(collection), id)
	return nil
}
