// Package resources maps the backend's REST endpoints onto typed Go
// accessors. One generic Resource covers the uniform CRUD entities; the
// account endpoints live in users.go because their paths and verbs do not
// follow the pattern.
package resources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"pannel_backoffice/internal/client"
)

// ListResult is the paginated list envelope. Some endpoints answer with a
// bare JSON array instead; UnmarshalJSON absorbs both shapes so callers
// never need to know which backend generation they are talking to.
type ListResult[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

func (lr *ListResult[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		lr.Count = len(items)
		lr.Results = items
		lr.Next = ""
		lr.Previous = ""
		return nil
	}
	type plain ListResult[T]
	var p plain
	if err := sonic.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*lr = ListResult[T](p)
	return nil
}

// Resource is a typed accessor for one uniform CRUD endpoint.
type Resource[T any] struct {
	c    *client.Client
	base string
	// patchOnUpdate switches edits from PUT to PATCH. Panels are the one
	// entity whose backend rejects full replacement.
	patchOnUpdate bool
}

// NewResource binds a resource to its base path, e.g. "/panel/city/".
func NewResource[T any](c *client.Client, base string) *Resource[T] {
	return &Resource[T]{c: c, base: base}
}

// WithPatchUpdates makes Update use PATCH instead of PUT.
func (r *Resource[T]) WithPatchUpdates() *Resource[T] {
	r.patchOnUpdate = true
	return r
}

// itemPath keeps the trailing-slash convention of the base path.
func (r *Resource[T]) itemPath(id string) string {
	if strings.HasSuffix(r.base, "/") {
		return r.base + id + "/"
	}
	return r.base + "/" + id
}

// List fetches one page. Page numbering starts at 1; search is forwarded
// as-is when non-empty.
func (r *Resource[T]) List(ctx context.Context, page int, search string) (*ListResult[T], error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := r.base
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out ListResult[T]
	if err := r.c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAll fetches the whole collection in one call. Used for the endpoints
// that do not paginate server side.
func (r *Resource[T]) ListAll(ctx context.Context) ([]T, error) {
	var out ListResult[T]
	if err := r.c.Get(ctx, r.base, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Get fetches a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Get(ctx, r.itemPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new record.
func (r *Resource[T]) Create(ctx context.Context, payload any) error {
	return r.c.Post(ctx, r.base, payload, nil)
}

// Update edits an existing record.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) error {
	if r.patchOnUpdate {
		return r.c.Patch(ctx, r.itemPath(id), payload, nil)
	}
	return r.c.Put(ctx, r.itemPath(id), payload, nil)
}

// Delete removes a record.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.itemPath(id), nil)
}
