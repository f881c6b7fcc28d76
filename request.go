package szurubooru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rzk3/szurubooru-client/internal/debug"
)

// Request holds the per-call parameters shared by every endpoint:
// field selection, paging limit and offset. A Request can be reused
// for several calls with the same parameters.
type Request struct {
	client *Client
	fields []string
	limit  *int
	offset *int
}

// WithFields restricts responses to the named resource fields. Fields
// left out decode to their zero values.
func (r *Request) WithFields(fields ...string) *Request {
	r.fields = append(r.fields, fields...)
	return r
}

// WithLimit caps the number of results per page.
func (r *Request) WithLimit(n int) *Request {
	r.limit = &n
	return r
}

// WithOffset skips the first n results.
func (r *Request) WithOffset(n int) *Request {
	r.offset = &n
	return r
}

// buildURL resolves path against the client base URL and attaches the
// query, fields, limit and offset parameters. A path that already
// contains the base URL (such as a propagated content URL) is used
// as-is.
func (r *Request) buildURL(path string, query []QueryToken) (string, error) {
	base := r.client.baseURL
	var u *url.URL
	if strings.Contains(path, base.String()) {
		parsed, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("parsing URL %q: %w", path, err)
		}
		u = parsed
	} else {
		clone := *base
		clone.Path = path
		// Resource paths arrive with their segments already escaped
		// (url.PathEscape in the endpoint methods). Keep that form as
		// RawPath so an escaped slash is not escaped a second time.
		if unescaped, err := url.PathUnescape(path); err == nil && unescaped != path {
			clone.Path = unescaped
			clone.RawPath = path
		}
		u = &clone
	}

	q := u.Query()
	if len(query) > 0 {
		q.Set("query", QueryString(query))
	}
	if len(r.fields) > 0 {
		q.Set("fields", strings.Join(r.fields, ","))
	}
	if r.limit != nil {
		q.Set("limit", strconv.Itoa(*r.limit))
	}
	if r.offset != nil {
		q.Set("offset", strconv.Itoa(*r.offset))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// do performs a JSON request and decodes the response into out.
// Pass a nil out to discard the response body.
func (r *Request) do(ctx context.Context, method, path string, query []QueryToken, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	reqURL, err := r.buildURL(path, query)
	if err != nil {
		return err
	}
	return r.roundTrip(ctx, method, reqURL, reader, "application/json", out)
}

// doMultipart performs a multipart request carrying a `metadata` JSON
// part plus the given file parts. With no file parts the metadata is
// sent as a plain JSON body instead.
func (r *Request) doMultipart(ctx context.Context, method, path string, metadata any, files []filePart, out any) error {
	if len(files) == 0 {
		return r.do(ctx, method, path, nil, metadata, out)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		part, err := writer.CreateFormField("metadata")
		if err != nil {
			return fmt.Errorf("creating metadata part: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return fmt.Errorf("writing metadata part: %w", err)
		}
	}

	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		if err != nil {
			return fmt.Errorf("creating %s part: %w", f.field, err)
		}
		if _, err := io.Copy(part, f.reader); err != nil {
			return fmt.Errorf("writing %s part: %w", f.field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}

	reqURL, err := r.buildURL(path, nil)
	if err != nil {
		return err
	}
	return r.roundTrip(ctx, method, reqURL, &buf, writer.FormDataContentType(), out)
}

// Raw performs a request against an arbitrary API path and returns
// the undecoded JSON response. A success body matching the structured
// error shape is returned as *ServerError.
func (r *Request) Raw(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	reqURL, err := r.buildURL(path, nil)
	if err != nil {
		return nil, err
	}
	var reader io.Reader
	contentType := ""
	if len(body) > 0 {
		reader = bytes.NewReader(body)
		contentType = "application/json"
	}
	var out json.RawMessage
	if err := r.roundTrip(ctx, method, reqURL, reader, contentType, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type filePart struct {
	field    string
	filename string
	reader   io.Reader
}

func (r *Request) newHTTPRequest(ctx context.Context, method, reqURL string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c := r.client
	c.auth.apply(req)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// roundTrip sends the request and routes the response: error statuses
// become *ServerError or *ResponseError, success bodies decode into
// out through the error-or-result envelope.
func (r *Request) roundTrip(ctx context.Context, method, reqURL string, body io.Reader, contentType string, out any) error {
	c := r.client
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req, err := r.newHTTPRequest(ctx, method, reqURL, body, contentType)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	debug.Log(ctx, "request complete", "method", method, "url", reqURL, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return errorFromBody(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return decodeEnvelope(data, out)
}

// fetchContent streams a non-JSON response (post content, thumbnails)
// into w.
func (r *Request) fetchContent(ctx context.Context, rawURL string, w io.Writer) error {
	c := r.client
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	reqURL, err := r.buildURL(rawURL, nil)
	if err != nil {
		return err
	}
	req, err := r.newHTTPRequest(ctx, http.MethodGet, reqURL, nil, "")
	if err != nil {
		return err
	}
	req.Header.Del("Accept")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		return errorFromBody(resp.StatusCode, data)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}
	return nil
}

// errorFromBody classifies an error-status body: the structured
// server error shape when it matches, the raw text otherwise.
func errorFromBody(status int, data []byte) error {
	if se, ok := parseServerError(data); ok {
		return se
	}
	return &ResponseError{StatusCode: status, Body: string(data)}
}

// decodeEnvelope decodes a success body. The server can answer 200
// with an error object, and the lenient struct decode would accept
// that object as an empty result, so the strict error shape is probed
// first. Resource payloads never carry all three of name, title and
// description together, which keeps real results out of this branch.
func decodeEnvelope(data []byte, out any) error {
	if se, ok := parseServerError(data); ok {
		return se
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Body: string(data), Err: err}
	}
	return nil
}

// parseServerError reports whether data is a structured server error.
// All three fields must be present.
func parseServerError(data []byte) (*ServerError, bool) {
	var probe struct {
		Name        *ErrorName `json:"name"`
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false
	}
	if probe.Name == nil || probe.Title == nil || probe.Description == nil {
		return nil, false
	}
	return &ServerError{Name: *probe.Name, Title: *probe.Title, Description: *probe.Description}, true
}
