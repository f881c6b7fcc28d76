package szurubooru

import (
	"context"
	"net/http"
)

// ListSnapshots lists recent resource snapshots, newest first. See the
// SnapshotToken constants for named tokens; there are no sort tokens.
func (r *Request) ListSnapshots(ctx context.Context, query []QueryToken) (*PagedResult[Snapshot], error) {
	var result PagedResult[Snapshot]
	if err := r.do(ctx, http.MethodGet, "/api/snapshots", query, nil, &result); err != nil {
		return nil, err
	}
	base := r.client.BaseURL()
	for i := range result.Results {
		result.Results[i].propagateURLs(base)
	}
	return &result, nil
}
