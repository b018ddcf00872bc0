// Package fixture provides an in-memory stand-in for the remote admin API.
// The store contract is identical to the real API client, so stores and
// tests run against it without modification. It is intended for tests and
// local development and deliberately keeps the implementation simple.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
)

// Transport is a thread-safe in-memory implementation of the resource
// transport. Items are schemaless JSON objects; insertion order is the
// server order.
type Transport struct {
	mu    sync.RWMutex
	items map[string]map[string]map[string]interface{}
	order map[string][]string
}

// NewTransport creates an empty fixture transport.
func NewTransport() *Transport {
	return &Transport{
		items: make(map[string]map[string]map[string]interface{}),
		order: make(map[string][]string),
	}
}

// Seed inserts an item directly, bypassing id assignment when the payload
// already carries one. Useful for arranging test state.
func (t *Transport) Seed(resource string, payload interface{}) (string, error) {
	obj, err := toObject(payload)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(resource, obj), nil
}

// Len returns the number of items in a collection.
func (t *Transport) Len(resource string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order[resource])
}

// =============================================================================
// resource.Transport implementation
// =============================================================================

// List returns one page of the collection matching the equality filters.
func (t *Transport) List(_ context.Context, resource string, page, pageSize int, filters map[string]string) (marineaxis.ListResult, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	matched := make([]map[string]interface{}, 0)
	for _, id := range t.order[resource] {
		obj := t.items[resource][id]
		if matchesFilters(obj, filters) {
			matched = append(matched, obj)
		}
	}

	total := len(matched)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	data, err := json.Marshal(matched[start:end])
	if err != nil {
		return marineaxis.ListResult{}, fmt.Errorf("marshal page: %w", err)
	}
	return marineaxis.ListResult{Items: data, Total: total}, nil
}

// Get returns a single item by id.
func (t *Transport) Get(_ context.Context, resource, id string) (json.RawMessage, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	obj, ok := t.items[resource][id]
	if !ok {
		return nil, &marineaxis.Error{Kind: marineaxis.KindServer, StatusCode: 404,
			Message: fmt.Sprintf("%s %s not found", resource, id)}
	}
	return json.Marshal(obj)
}

// Create inserts a new item, assigning an id and timestamps the way the
// real API does.
func (t *Transport) Create(_ context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	obj, err := toObject(payload)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	id := t.insertLocked(resource, obj)
	stored := t.items[resource][id]
	t.mu.Unlock()

	return json.Marshal(stored)
}

// Update merges the patch into an existing item.
func (t *Transport) Update(_ context.Context, resource, id string, patch interface{}) (json.RawMessage, error) {
	obj, err := toObject(patch)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.items[resource][id]
	if !ok {
		return nil, &marineaxis.Error{Kind: marineaxis.KindServer, StatusCode: 404,
			Message: fmt.Sprintf("%s %s not found", resource, id)}
	}
	for k, v := range obj {
		if k == "id" || k == "created_at" {
			continue
		}
		existing[k] = v
	}
	existing["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return json.Marshal(existing)
}

// Delete removes an item by id.
func (t *Transport) Delete(_ context.Context, resource, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.items[resource][id]; !ok {
		return &marineaxis.Error{Kind: marineaxis.KindServer, StatusCode: 404,
			Message: fmt.Sprintf("%s %s not found", resource, id)}
	}
	delete(t.items[resource], id)
	ids := t.order[resource]
	for i, existing := range ids {
		if existing == id {
			t.order[resource] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func (t *Transport) insertLocked(resource string, obj map[string]interface{}) string {
	if t.items[resource] == nil {
		t.items[resource] = make(map[string]map[string]interface{})
	}

	id, _ := obj["id"].(string)
	if id == "" {
		id = uuid.New().String()
		obj["id"] = id
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, ok := obj["created_at"]; !ok {
		obj["created_at"] = now
	}
	obj["updated_at"] = now

	t.items[resource][id] = obj
	t.order[resource] = append(t.order[resource], id)
	return id
}

func toObject(payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return obj, nil
}

func matchesFilters(obj map[string]interface{}, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		value, ok := obj[key]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", value) != want {
			return false
		}
	}
	return true
}
