package marineaxis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/marineaxis/marine-axis-admin/internal/metrics"
)

// ResourceClient performs uniform CRUD calls against named collections
// (admins, providers, jobs, bookings, vessels, ...).
type ResourceClient struct {
	client *Client
}

// List reads one page of a collection. Filters are equality constraints;
// an absent key means no constraint.
func (r *ResourceClient) List(ctx context.Context, resource string, page, pageSize int, filters map[string]string) (ListResult, error) {
	urlStr := r.collectionURL(resource, page, pageSize, filters)

	env, err := r.observe(ctx, resource, "list", func(ctx context.Context) (*envelope, error) {
		return r.client.do(ctx, http.MethodGet, urlStr, nil, true)
	})
	if err != nil {
		return ListResult{}, err
	}

	total := 0
	if env.Total != nil {
		total = *env.Total
	}
	return ListResult{Items: env.Data, Total: total}, nil
}

// Get reads a single item by id.
func (r *ResourceClient) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	env, err := r.observe(ctx, resource, "get", func(ctx context.Context) (*envelope, error) {
		return r.client.do(ctx, http.MethodGet, r.itemURL(resource, id), nil, true)
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Create inserts a new item and returns the server's representation,
// including server-assigned fields such as id and timestamps.
func (r *ResourceClient) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	env, err := r.observe(ctx, resource, "create", func(ctx context.Context) (*envelope, error) {
		return r.client.do(ctx, http.MethodPost, r.client.apiURL+"/"+url.PathEscape(resource), payload, true)
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Update patches an existing item and returns the updated representation.
func (r *ResourceClient) Update(ctx context.Context, resource, id string, patch interface{}) (json.RawMessage, error) {
	env, err := r.observe(ctx, resource, "update", func(ctx context.Context) (*envelope, error) {
		return r.client.do(ctx, http.MethodPut, r.itemURL(resource, id), patch, true)
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Delete removes an item by id.
func (r *ResourceClient) Delete(ctx context.Context, resource, id string) error {
	_, err := r.observe(ctx, resource, "delete", func(ctx context.Context) (*envelope, error) {
		return r.client.do(ctx, http.MethodDelete, r.itemURL(resource, id), nil, true)
	})
	return err
}

// =============================================================================
// Helpers
// =============================================================================

func (r *ResourceClient) observe(ctx context.Context, resource, operation string, call func(context.Context) (*envelope, error)) (*envelope, error) {
	start := time.Now()
	env, err := call(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		r.client.log.WithError(err).Warn("api call failed",
			"resource", resource, "operation", operation)
	}
	metrics.ObserveRequest(resource, operation, outcome, time.Since(start))
	return env, err
}

func (r *ResourceClient) itemURL(resource, id string) string {
	return r.client.apiURL + "/" + url.PathEscape(resource) + "/" + url.PathEscape(id)
}

func (r *ResourceClient) collectionURL(resource string, page, pageSize int, filters map[string]string) string {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("page_size", fmt.Sprintf("%d", pageSize))

	// Deterministic query order keeps request logs and test fixtures stable.
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Set(k, filters[k])
	}

	return r.client.apiURL + "/" + url.PathEscape(resource) + "?" + params.Encode()
}
