package szurubooru

import (
	"context"
	"net/http"
	"strconv"
)

// ListComments searches for comments. Anonymous tokens match comment
// text; see the CommentToken and CommentSort constants for named
// tokens.
func (r *Request) ListComments(ctx context.Context, query []QueryToken) (*PagedResult[Comment], error) {
	var result PagedResult[Comment]
	if err := r.do(ctx, http.MethodGet, "/api/comments", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateComment adds a comment to a post.
func (r *Request) CreateComment(ctx context.Context, comment *CreateUpdateComment) (*Comment, error) {
	var result Comment
	if err := r.do(ctx, http.MethodPost, "/api/comments", nil, comment, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateComment changes a comment's text. comment.Version must match
// the current one.
func (r *Request) UpdateComment(ctx context.Context, id int, comment *CreateUpdateComment) (*Comment, error) {
	var result Comment
	if err := r.do(ctx, http.MethodPut, "/api/comment/"+strconv.Itoa(id), nil, comment, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetComment retrieves an existing comment.
func (r *Request) GetComment(ctx context.Context, id int) (*Comment, error) {
	var result Comment
	if err := r.do(ctx, http.MethodGet, "/api/comment/"+strconv.Itoa(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteComment deletes a comment.
func (r *Request) DeleteComment(ctx context.Context, id, version int) error {
	return r.do(ctx, http.MethodDelete, "/api/comment/"+strconv.Itoa(id), nil, &ResourceVersion{Version: version}, nil)
}

// RateComment sets the authenticated user's score on a comment. Valid
// scores are -1, 0 and 1.
func (r *Request) RateComment(ctx context.Context, id, score int) (*Comment, error) {
	if score < -1 || score > 1 {
		return nil, validationErrorf("comment score must be -1, 0 or 1, got %d", score)
	}
	var result Comment
	if err := r.do(ctx, http.MethodPut, "/api/comment/"+strconv.Itoa(id)+"/score", nil, &rateRequest{Score: score}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
