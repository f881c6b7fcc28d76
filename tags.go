package szurubooru

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListTagCategories lists all tag categories. Does not page.
func (r *Request) ListTagCategories(ctx context.Context) (*UnpagedResult[TagCategory], error) {
	var result UnpagedResult[TagCategory]
	if err := r.do(ctx, http.MethodGet, "/api/tag-categories", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTagCategory creates a new tag category. The name must match
// the server's tag_category_name_regex. The first category created
// becomes the default.
func (r *Request) CreateTagCategory(ctx context.Context, category *CreateUpdateTagCategory) (*TagCategory, error) {
	var result TagCategory
	if err := r.do(ctx, http.MethodPost, "/api/tag-categories", nil, category, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTagCategory updates an existing tag category. Only the
// provided fields change; Version must match the current one.
func (r *Request) UpdateTagCategory(ctx context.Context, name string, category *CreateUpdateTagCategory) (*TagCategory, error) {
	path := fmt.Sprintf("/api/tag-category/%s", url.PathEscape(name))
	var result TagCategory
	if err := r.do(ctx, http.MethodPut, path, nil, category, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTagCategory retrieves an existing tag category.
func (r *Request) GetTagCategory(ctx context.Context, name string) (*TagCategory, error) {
	path := fmt.Sprintf("/api/tag-category/%s", url.PathEscape(name))
	var result TagCategory
	if err := r.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTagCategory deletes a tag category. The category must have no
// usages.
func (r *Request) DeleteTagCategory(ctx context.Context, name string, version int) error {
	path := fmt.Sprintf("/api/tag-category/%s", url.PathEscape(name))
	return r.do(ctx, http.MethodDelete, path, nil, &ResourceVersion{Version: version}, nil)
}

// SetDefaultTagCategory makes the given category the default for
// automatically created tags.
func (r *Request) SetDefaultTagCategory(ctx context.Context, name string) (*TagCategory, error) {
	path := fmt.Sprintf("/api/tag-category/%s/default", url.PathEscape(name))
	var result TagCategory
	if err := r.do(ctx, http.MethodPut, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTags searches for tags. Anonymous tokens match tag names; see
// the TagToken and TagSort constants for named tokens.
func (r *Request) ListTags(ctx context.Context, query []QueryToken) (*PagedResult[Tag], error) {
	var result PagedResult[Tag]
	if err := r.do(ctx, http.MethodGet, "/api/tags", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTag creates a new tag. Names, suggestions and implications
// must match the server's tag_name_regex; implied or suggested tags
// that do not exist yet are created automatically.
func (r *Request) CreateTag(ctx context.Context, tag *CreateUpdateTag) (*Tag, error) {
	var result Tag
	if err := r.do(ctx, http.MethodPost, "/api/tags", nil, tag, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTag updates an existing tag. Only the provided fields change;
// Version must match the current one.
func (r *Request) UpdateTag(ctx context.Context, name string, tag *CreateUpdateTag) (*Tag, error) {
	path := fmt.Sprintf("/api/tag/%s", url.PathEscape(name))
	var result Tag
	if err := r.do(ctx, http.MethodPut, path, nil, tag, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTag retrieves an existing tag.
func (r *Request) GetTag(ctx context.Context, name string) (*Tag, error) {
	path := fmt.Sprintf("/api/tag/%s", url.PathEscape(name))
	var result Tag
	if err := r.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTag deletes a tag. Posts tagged with it lose the tag.
func (r *Request) DeleteTag(ctx context.Context, name string, version int) error {
	path := fmt.Sprintf("/api/tag/%s", url.PathEscape(name))
	return r.do(ctx, http.MethodDelete, path, nil, &ResourceVersion{Version: version}, nil)
}

// MergeTags removes the source tag and merges its usages, suggestions
// and implications into the target tag. Category and aliases of the
// source are discarded.
func (r *Request) MergeTags(ctx context.Context, merge *MergeTags) (*Tag, error) {
	var result Tag
	if err := r.do(ctx, http.MethodPost, "/api/tag-merge", nil, merge, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTagSiblings lists tags that occur in the same posts as the given
// tag, with their co-occurrence counts.
func (r *Request) GetTagSiblings(ctx context.Context, name string) (*UnpagedResult[TagSibling], error) {
	path := fmt.Sprintf("/api/tag-siblings/%s", url.PathEscape(name))
	var result UnpagedResult[TagSibling]
	if err := r.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
