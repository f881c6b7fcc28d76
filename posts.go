package szurubooru

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// ListPosts searches for posts. Anonymous tokens match tag names; see
// the PostToken, PostSort and PostSpecial constants for named tokens.
func (r *Request) ListPosts(ctx context.Context, query []QueryToken) (*PagedResult[Post], error) {
	var result PagedResult[Post]
	if err := r.do(ctx, http.MethodGet, "/api/posts", query, nil, &result); err != nil {
		return nil, err
	}
	base := r.client.BaseURL()
	for i := range result.Results {
		result.Results[i].propagateURLs(base)
	}
	return &result, nil
}

// CreatePostFromURL creates a post whose content the server fetches
// from post.ContentURL. Safety is required.
func (r *Request) CreatePostFromURL(ctx context.Context, post *CreateUpdatePost) (*Post, error) {
	if post.Safety == "" {
		return nil, validationErrorf("creating a post requires a safety rating")
	}
	return r.postRequest(ctx, http.MethodPost, "/api/posts", post, nil)
}

// UpdatePost updates an existing post. Only the provided fields
// change; post.Version must match the current one.
func (r *Request) UpdatePost(ctx context.Context, id int, post *CreateUpdatePost) (*Post, error) {
	return r.postRequest(ctx, http.MethodPut, "/api/post/"+strconv.Itoa(id), post, nil)
}

// CreatePostFromFile creates a post from content read from a reader,
// with an optional thumbnail override. Safety is required; filename
// only informs the server's format detection.
func (r *Request) CreatePostFromFile(ctx context.Context, content io.Reader, filename string, thumbnail io.Reader, post *CreateUpdatePost) (*Post, error) {
	if post.Safety == "" {
		return nil, validationErrorf("creating a post requires a safety rating")
	}
	files := contentFileParts(content, filename, thumbnail)
	return r.postRequest(ctx, http.MethodPost, "/api/posts", post, files)
}

// CreatePostFromFilePath creates a post from a file on disk, with an
// optional thumbnail file. Safety is required.
func (r *Request) CreatePostFromFilePath(ctx context.Context, contentPath, thumbnailPath string, post *CreateUpdatePost) (*Post, error) {
	if post.Safety == "" {
		return nil, validationErrorf("creating a post requires a safety rating")
	}
	content, thumbnail, filename, cleanup, err := openContentFiles(contentPath, thumbnailPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	files := contentFileParts(content, filename, thumbnail)
	return r.postRequest(ctx, http.MethodPost, "/api/posts", post, files)
}

// CreatePostFromToken creates a post from content previously uploaded
// with UploadTemporaryFile. Safety and post.ContentToken are required.
func (r *Request) CreatePostFromToken(ctx context.Context, post *CreateUpdatePost) (*Post, error) {
	if post.Safety == "" {
		return nil, validationErrorf("creating a post requires a safety rating")
	}
	if post.ContentToken == "" {
		return nil, validationErrorf("creating a post from a token requires a content token")
	}
	return r.postRequest(ctx, http.MethodPost, "/api/posts", post, nil)
}

// UpdatePostFromFile replaces a post's content from a reader, with an
// optional thumbnail override.
func (r *Request) UpdatePostFromFile(ctx context.Context, id int, content io.Reader, filename string, thumbnail io.Reader, post *CreateUpdatePost) (*Post, error) {
	files := contentFileParts(content, filename, thumbnail)
	return r.postRequest(ctx, http.MethodPut, "/api/post/"+strconv.Itoa(id), post, files)
}

// UpdatePostFromFilePath replaces a post's content from a file on
// disk, with an optional thumbnail file.
func (r *Request) UpdatePostFromFilePath(ctx context.Context, id int, contentPath, thumbnailPath string, post *CreateUpdatePost) (*Post, error) {
	content, thumbnail, filename, cleanup, err := openContentFiles(contentPath, thumbnailPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	files := contentFileParts(content, filename, thumbnail)
	return r.postRequest(ctx, http.MethodPut, "/api/post/"+strconv.Itoa(id), post, files)
}

// UpdatePostFromToken replaces a post's content from a previous
// temporary upload. post.ContentToken is required.
func (r *Request) UpdatePostFromToken(ctx context.Context, id int, post *CreateUpdatePost) (*Post, error) {
	if post.ContentToken == "" {
		return nil, validationErrorf("updating a post from a token requires a content token")
	}
	return r.postRequest(ctx, http.MethodPut, "/api/post/"+strconv.Itoa(id), post, nil)
}

// postRequest sends a post create/update and propagates URLs on the
// returned post.
func (r *Request) postRequest(ctx context.Context, method, path string, post *CreateUpdatePost, files []filePart) (*Post, error) {
	var result Post
	if err := r.doMultipart(ctx, method, path, post, files, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// contentFileParts builds the `content` and optional `thumbnail` file
// parts. The thumbnail filename gains a thumbnail_ prefix so the two
// parts stay distinguishable server-side.
func contentFileParts(content io.Reader, filename string, thumbnail io.Reader) []filePart {
	files := []filePart{{field: "content", filename: filename, reader: content}}
	if thumbnail != nil {
		files = append(files, filePart{field: "thumbnail", filename: "thumbnail_" + filename, reader: thumbnail})
	}
	return files
}

// openContentFiles opens the content file and, when thumbnailPath is
// non-empty, the thumbnail file. The caller must invoke cleanup.
func openContentFiles(contentPath, thumbnailPath string) (content, thumbnail io.Reader, filename string, cleanup func(), err error) {
	contentFile, err := os.Open(contentPath)
	if err != nil {
		return nil, nil, "", nil, fmt.Errorf("opening content file: %w", err)
	}
	if thumbnailPath == "" {
		return contentFile, nil, filepath.Base(contentPath), func() { _ = contentFile.Close() }, nil
	}
	thumbnailFile, err := os.Open(thumbnailPath)
	if err != nil {
		_ = contentFile.Close()
		return nil, nil, "", nil, fmt.Errorf("opening thumbnail file: %w", err)
	}
	cleanup = func() {
		_ = contentFile.Close()
		_ = thumbnailFile.Close()
	}
	return contentFile, thumbnailFile, filepath.Base(contentPath), cleanup, nil
}

// GetPost retrieves an existing post.
func (r *Request) GetPost(ctx context.Context, id int) (*Post, error) {
	var result Post
	if err := r.do(ctx, http.MethodGet, "/api/post/"+strconv.Itoa(id), nil, nil, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// GetAroundPost retrieves the posts adjacent to the given post in the
// default listing order.
func (r *Request) GetAroundPost(ctx context.Context, id int) (*AroundPostResult, error) {
	var result AroundPostResult
	if err := r.do(ctx, http.MethodGet, "/api/post/"+strconv.Itoa(id)+"/around", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePost deletes a post. Related posts and tags are untouched.
func (r *Request) DeletePost(ctx context.Context, id, version int) error {
	return r.do(ctx, http.MethodDelete, "/api/post/"+strconv.Itoa(id), nil, &ResourceVersion{Version: version}, nil)
}

// MergePosts removes the source post and merges its tags, relations,
// scores, favorites and comments into the target post.
func (r *Request) MergePosts(ctx context.Context, merge *MergePosts) (*Post, error) {
	var result Post
	if err := r.do(ctx, http.MethodPost, "/api/post-merge/", nil, merge, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// RatePost sets the authenticated user's score on a post. Valid scores
// are -1, 0 and 1.
func (r *Request) RatePost(ctx context.Context, id, score int) (*Post, error) {
	if score < -1 || score > 1 {
		return nil, validationErrorf("post score must be -1, 0 or 1, got %d", score)
	}
	var result Post
	if err := r.do(ctx, http.MethodPut, "/api/post/"+strconv.Itoa(id)+"/score", nil, &rateRequest{Score: score}, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// FavoritePost adds a post to the authenticated user's favorites.
func (r *Request) FavoritePost(ctx context.Context, id int) (*Post, error) {
	var result Post
	if err := r.do(ctx, http.MethodPost, "/api/post/"+strconv.Itoa(id)+"/favorite", nil, nil, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// UnfavoritePost removes a post from the authenticated user's
// favorites.
func (r *Request) UnfavoritePost(ctx context.Context, id int) (*Post, error) {
	var result Post
	if err := r.do(ctx, http.MethodDelete, "/api/post/"+strconv.Itoa(id)+"/favorite", nil, nil, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// GetFeaturedPost retrieves the currently featured post, or nil when
// no post is featured.
func (r *Request) GetFeaturedPost(ctx context.Context) (*Post, error) {
	var result *Post
	if err := r.do(ctx, http.MethodGet, "/api/featured-post", nil, nil, &result); err != nil {
		return nil, err
	}
	if result != nil {
		result.propagateURLs(r.client.BaseURL())
	}
	return result, nil
}

// SetFeaturedPost features a post on the front page.
func (r *Request) SetFeaturedPost(ctx context.Context, id int) (*Post, error) {
	var result Post
	if err := r.do(ctx, http.MethodPost, "/api/featured-post", nil, &postIDRequest{ID: id}, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// PostContent streams a post's content (the image or video itself)
// into w.
func (r *Request) PostContent(ctx context.Context, post *Post, w io.Writer) error {
	if post.ContentURL == "" {
		return validationErrorf("post %d has no content URL", post.ID)
	}
	return r.fetchContent(ctx, post.ContentURL, w)
}

// PostThumbnail streams a post's thumbnail into w.
func (r *Request) PostThumbnail(ctx context.Context, post *Post, w io.Writer) error {
	if post.ThumbnailURL == "" {
		return validationErrorf("post %d has no thumbnail URL", post.ID)
	}
	return r.fetchContent(ctx, post.ThumbnailURL, w)
}

// DownloadPostContentToPath saves a post's content to a file,
// truncating it if it exists.
func (r *Request) DownloadPostContentToPath(ctx context.Context, post *Post, path string) error {
	return r.downloadToPath(ctx, path, func(w io.Writer) error {
		return r.PostContent(ctx, post, w)
	})
}

// DownloadPostThumbnailToPath saves a post's thumbnail to a file,
// truncating it if it exists.
func (r *Request) DownloadPostThumbnailToPath(ctx context.Context, post *Post, path string) error {
	return r.downloadToPath(ctx, path, func(w io.Writer) error {
		return r.PostThumbnail(ctx, post, w)
	})
}

func (r *Request) downloadToPath(ctx context.Context, path string, fetch func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fetch(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReverseSearchFile looks up posts visually similar to the given
// image, including an exact match when the server already has it.
func (r *Request) ReverseSearchFile(ctx context.Context, content io.Reader, filename string) (*ImageSearchResult, error) {
	files := []filePart{{field: "content", filename: filename, reader: content}}
	var result ImageSearchResult
	if err := r.doMultipart(ctx, http.MethodPost, "/api/posts/reverse-search", nil, files, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// ReverseSearchFilePath looks up posts visually similar to an image
// file on disk.
func (r *Request) ReverseSearchFilePath(ctx context.Context, path string) (*ImageSearchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.ReverseSearchFile(ctx, f, filepath.Base(path))
}

// PostForFile finds the post whose content exactly matches the given
// file, by its SHA-1 checksum. Returns nil when no post matches.
func (r *Request) PostForFile(ctx context.Context, content io.Reader) (*Post, error) {
	h := sha1.New()
	if _, err := io.Copy(h, content); err != nil {
		return nil, fmt.Errorf("hashing content: %w", err)
	}
	checksum := hex.EncodeToString(h.Sum(nil))
	result, err := r.ListPosts(ctx, []QueryToken{Token(PostTokenContentChecksum, checksum)})
	if err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, nil
	}
	return &result.Results[0], nil
}

// PostForFilePath finds the post whose content exactly matches a file
// on disk. Returns nil when no post matches.
func (r *Request) PostForFilePath(ctx context.Context, path string) (*Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.PostForFile(ctx, f)
}
