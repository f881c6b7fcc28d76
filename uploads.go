package szurubooru

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// UploadTemporaryFile puts a file in the server's temporary upload
// area. The returned token can stand in for file content in other
// requests, letting metadata submission and file upload happen
// separately. Unused uploads are cleaned up after a few hours.
func (r *Request) UploadTemporaryFile(ctx context.Context, content io.Reader, filename string) (*TemporaryUpload, error) {
	files := []filePart{{field: "content", filename: filename, reader: content}}
	var result TemporaryUpload
	if err := r.doMultipart(ctx, http.MethodPost, "/api/uploads", nil, files, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadTemporaryFileFromPath puts a file on disk in the server's
// temporary upload area.
func (r *Request) UploadTemporaryFileFromPath(ctx context.Context, path string) (*TemporaryUpload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening upload file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.UploadTemporaryFile(ctx, f, filepath.Base(path))
}
