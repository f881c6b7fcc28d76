package szurubooru

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListPoolCategories lists all pool categories. Does not page.
func (r *Request) ListPoolCategories(ctx context.Context) (*UnpagedResult[PoolCategory], error) {
	var result UnpagedResult[PoolCategory]
	if err := r.do(ctx, http.MethodGet, "/api/pool-categories", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePoolCategory creates a new pool category. The first category
// created becomes the default.
func (r *Request) CreatePoolCategory(ctx context.Context, category *CreateUpdatePoolCategory) (*PoolCategory, error) {
	var result PoolCategory
	if err := r.do(ctx, http.MethodPost, "/api/pool-categories", nil, category, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePoolCategory updates an existing pool category. Only the
// provided fields change; Version must match the current one.
func (r *Request) UpdatePoolCategory(ctx context.Context, name string, category *CreateUpdatePoolCategory) (*PoolCategory, error) {
	path := fmt.Sprintf("/api/pool-category/%s", url.PathEscape(name))
	var result PoolCategory
	if err := r.do(ctx, http.MethodPut, path, nil, category, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPoolCategory retrieves an existing pool category.
func (r *Request) GetPoolCategory(ctx context.Context, name string) (*PoolCategory, error) {
	path := fmt.Sprintf("/api/pool-category/%s", url.PathEscape(name))
	var result PoolCategory
	if err := r.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePoolCategory deletes a pool category. The category must have
// no usages.
func (r *Request) DeletePoolCategory(ctx context.Context, name string, version int) error {
	path := fmt.Sprintf("/api/pool-category/%s", url.PathEscape(name))
	return r.do(ctx, http.MethodDelete, path, nil, &ResourceVersion{Version: version}, nil)
}

// SetDefaultPoolCategory makes the given category the default for new
// pools.
func (r *Request) SetDefaultPoolCategory(ctx context.Context, name string) (*PoolCategory, error) {
	path := fmt.Sprintf("/api/pool-category/%s/default", url.PathEscape(name))
	var result PoolCategory
	if err := r.do(ctx, http.MethodPut, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPools searches for pools. Anonymous tokens match pool names; see
// the PoolToken and PoolSort constants for named tokens.
func (r *Request) ListPools(ctx context.Context, query []QueryToken) (*PagedResult[Pool], error) {
	var result PagedResult[Pool]
	if err := r.do(ctx, http.MethodGet, "/api/pools", query, nil, &result); err != nil {
		return nil, err
	}
	base := r.client.BaseURL()
	for i := range result.Results {
		result.Results[i].propagateURLs(base)
	}
	return &result, nil
}

// CreatePool creates a new pool. Post IDs are kept in the given order
// and may not repeat.
func (r *Request) CreatePool(ctx context.Context, pool *CreateUpdatePool) (*Pool, error) {
	var result Pool
	if err := r.do(ctx, http.MethodPost, "/api/pool", nil, pool, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// UpdatePool updates an existing pool. Only the provided fields
// change; pool.Version must match the current one.
func (r *Request) UpdatePool(ctx context.Context, id int, pool *CreateUpdatePool) (*Pool, error) {
	var result Pool
	if err := r.do(ctx, http.MethodPut, "/api/pool/"+strconv.Itoa(id), nil, pool, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// GetPool retrieves an existing pool.
func (r *Request) GetPool(ctx context.Context, id int) (*Pool, error) {
	var result Pool
	if err := r.do(ctx, http.MethodGet, "/api/pool/"+strconv.Itoa(id), nil, nil, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// DeletePool deletes a pool. Posts in the pool are untouched.
func (r *Request) DeletePool(ctx context.Context, id, version int) error {
	return r.do(ctx, http.MethodDelete, "/api/pool/"+strconv.Itoa(id), nil, &ResourceVersion{Version: version}, nil)
}

// MergePools removes the source pool and moves its posts to the target
// pool. Ordering is preserved, with the source's posts appended; posts
// already in the target are not duplicated.
func (r *Request) MergePools(ctx context.Context, merge *MergePools) (*Pool, error) {
	var result Pool
	if err := r.do(ctx, http.MethodPost, "/api/pool-merge", nil, merge, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}
