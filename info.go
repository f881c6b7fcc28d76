package szurubooru

import (
	"context"
	"net/http"
)

// GetGlobalInfo retrieves server statistics and the subset of the
// server configuration relevant to clients. Fields requiring
// privileges the user does not have decode to their zero values.
func (r *Request) GetGlobalInfo(ctx context.Context) (*GlobalInfo, error) {
	var result GlobalInfo
	if err := r.do(ctx, http.MethodGet, "/api/info", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
