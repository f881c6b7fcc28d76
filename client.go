package szurubooru

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the request timeout of the client's default
// *http.Client.
const DefaultTimeout = 30 * time.Second

// Client talks to a szurubooru server. Construct one with
// NewWithToken, NewWithBasicAuth or NewAnonymous, then start requests
// through Request (or the WithFields/WithLimit/WithOffset shortcuts).
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	auth      authCredentials
	userAgent string
	limiter   *rate.Limiter
}

type authKind int

const (
	authNone authKind = iota
	authBasic
	authToken
)

// authCredentials carries whichever credentials the client was built
// with. Its String/GoString implementations never reveal them.
type authCredentials struct {
	kind     authKind
	username string
	password string
	header   string // precomputed Authorization value for token auth
}

func (a authCredentials) apply(req *http.Request) {
	switch a.kind {
	case authToken:
		req.Header.Set("Authorization", a.header)
	case authBasic:
		req.SetBasicAuth(a.username, a.password)
	}
}

func (a authCredentials) String() string {
	switch a.kind {
	case authToken:
		return "token auth (redacted)"
	case authBasic:
		return "basic auth (redacted)"
	default:
		return "anonymous"
	}
}

func (a authCredentials) GoString() string { return a.String() }

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the request timeout on the client's *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithInsecureTLS disables TLS certificate verification. Meant for
// servers with self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := baseTransport()
		transport.TLSClientConfig.InsecureSkipVerify = true
		c.http.Transport = transport
	}
}

// WithRateLimit caps outgoing requests at rps requests per second
// with the given burst. Requests block (honoring the context) until
// the limiter admits them.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func baseTransport() *http.Transport {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		base = &http.Transport{}
	}
	transport := base.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12
	return transport
}

// NewWithToken creates a client that authenticates with a user token,
// sent as `Authorization: Token base64(username:token)`.
func NewWithToken(host, username, token string, opts ...Option) (*Client, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + token))
	auth := authCredentials{kind: authToken, header: "Token " + encoded}
	return newClient(host, auth, opts...)
}

// NewWithBasicAuth creates a client that authenticates with HTTP basic
// auth using the user's password.
func NewWithBasicAuth(host, username, password string, opts ...Option) (*Client, error) {
	auth := authCredentials{kind: authBasic, username: username, password: password}
	return newClient(host, auth, opts...)
}

// NewAnonymous creates a client without credentials.
func NewAnonymous(host string, opts ...Option) (*Client, error) {
	return newClient(host, authCredentials{kind: authNone}, opts...)
}

func newClient(host string, auth authCredentials, opts ...Option) (*Client, error) {
	host = strings.TrimSuffix(host, "/")
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, validationErrorf("base URL %q must start with http:// or https://", host)
	}
	u.Fragment = ""

	c := &Client{
		baseURL: u,
		auth:    auth,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) String() string {
	return fmt.Sprintf("szurubooru.Client(%s, %s)", c.baseURL, c.auth)
}

// GoString implements fmt.GoStringer so %#v does not leak credentials.
func (c *Client) GoString() string { return c.String() }

// Request starts a request with no field selection, limit or offset.
func (c *Client) Request() *Request {
	return &Request{client: c}
}

// WithFields starts a request returning only the named resource
// fields.
func (c *Client) WithFields(fields ...string) *Request {
	return c.Request().WithFields(fields...)
}

// WithLimit starts a request capped at n results per page.
func (c *Client) WithLimit(n int) *Request {
	return c.Request().WithLimit(n)
}

// WithOffset starts a request skipping the first n results.
func (c *Client) WithOffset(n int) *Request {
	return c.Request().WithOffset(n)
}
