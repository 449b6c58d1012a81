package client

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/frage-dev/frage/pkg/api"
)

// DefaultBaseURL is the API root used when no override is configured.
const DefaultBaseURL = "https://api.openai.com/v1/"

// envAPIKey is the environment variable consulted when no explicit API key
// is configured.
const envAPIKey = "OPENAI_API_KEY"

// Client holds the immutable configuration for talking to an
// OpenAI-compatible backend. Build it once with [New] and share it across
// goroutines; all fields are read-only after construction.
type Client struct {
	baseURL      string
	apiKey       string
	organization string

	// httpClient carries the configured timeout and is used for unary calls.
	httpClient *http.Client
	// streamClient shares httpClient's transport but has no overall timeout:
	// a stream can legitimately outlive any fixed timeout, so its lifetime
	// is bounded by the request context instead.
	streamClient *http.Client

	// timeout is applied to httpClient after all options have run, so
	// WithTimeout and WithHTTPClient compose in either order.
	timeout    time.Duration
	timeoutSet bool

	onSkippedChunk func(data string, err error)
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithBaseURL overrides the default API root (e.g. for proxies or mock
// servers). Trailing slashes are irrelevant; paths are joined with exactly
// one separator.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithAPIKey sets the bearer credential explicitly. Without it, New reads
// the OPENAI_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithOrganization sets the optional organization ID, sent as the
// OpenAI-Organization header on every request.
func WithOrganization(org string) Option {
	return func(c *Client) { c.organization = org }
}

// WithTimeout bounds every unary call. Streaming calls are exempt; cancel
// their context instead. Zero means no client-side timeout. The timeout
// also applies when combined with [WithHTTPClient], regardless of option
// order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.timeoutSet = true
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to configure a
// proxy or custom TLS. The configured transport is shared with streaming
// calls; the timeout is not.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSkippedChunkHandler installs a callback invoked whenever a stream
// chunk is dropped because it did not parse. The callback receives the raw
// chunk text and the parse error. Useful for detecting schema drift beyond
// the built-in log line and metric.
func WithSkippedChunkHandler(fn func(data string, err error)) Option {
	return func(c *Client) { c.onSkippedChunk = fn }
}

// New builds a Client. The API key must be supplied via [WithAPIKey] or the
// OPENAI_API_KEY environment variable; a missing key is a config-kind error.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeoutSet {
		c.httpClient.Timeout = c.timeout
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv(envAPIKey)
	}
	if c.apiKey == "" {
		return nil, api.NewConfigError("missing API key: set it with WithAPIKey or the " + envAPIKey + " environment variable")
	}

	c.streamClient = &http.Client{Transport: c.httpClient.Transport}

	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Organization returns the configured organization ID, or "".
func (c *Client) Organization() string {
	return c.organization
}

// endpointURL joins the base URL and a relative path with exactly one
// separating slash, regardless of trailing or leading slashes on either side.
func (c *Client) endpointURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// endpointLabel reduces a relative path to its first segment for metric
// labels, keeping cardinality bounded when paths embed resource IDs.
func endpointLabel(path string) string {
	path = strings.TrimLeft(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
