package thriftdb

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
)

// DefaultBaseURL is the root of the hosted ThriftDB API.
const DefaultBaseURL = constants.DefaultBaseURL

// BulkAction names an operation under a collection's _bulk path.
type BulkAction string

// Bulk actions understood by the service.
const (
	BulkPutMulti    BulkAction = constants.ActionPutMulti
	BulkGetMulti    BulkAction = constants.ActionGetMulti
	BulkDeleteMulti BulkAction = constants.ActionDeleteMulti
	BulkReindex     BulkAction = constants.ActionReindex
)

// Credentials are the HTTP basic auth pair sent with every request.
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-"        yaml:"-"`
}

// IsZero reports whether no credentials were given. Requests made with zero
// credentials carry no Authorization header.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// ItemID identifies an item within a collection. It is placed in item paths
// as-is; in bulk id lists it is query-escaped with commas left literal.
type ItemID string

// IntID formats an integer item id.
func IntID(n int64) ItemID {
	return ItemID(strconv.FormatInt(n, 10))
}

// IDs converts plain strings to item ids.
func IDs(ids ...string) []ItemID {
	out := make([]ItemID, 0, len(ids))
	for _, id := range ids {
		out = append(out, ItemID(id))
	}

	return out
}

// String implements fmt.Stringer.
func (id ItemID) String() string {
	return string(id)
}

// Query holds extra query-string parameters. Keys and values are
// percent-encoded. Each key carries a single value; repeated keys cannot be
// expressed.
type Query map[string]string

// Encode returns the encoded query string ("bar=baz&foo=quux"), sorted by key.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	values := make(url.Values, len(q))
	for key, value := range q {
		values.Set(key, value)
	}

	return values.Encode()
}

// Response is the raw result of one request. The client does not interpret
// the status code or the body.
type Response struct {
	StatusCode int         `json:"status_code" yaml:"status_code"`
	Headers    http.Header `json:"headers"     yaml:"headers"`
	Body       []byte      `json:"-"           yaml:"-"`
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Err returns a *StatusError for non-2xx responses and nil otherwise. It is
// provided for callers that prefer error values; the client never calls it.
func (r *Response) Err() error {
	if r.IsSuccess() {
		return nil
	}

	return &StatusError{StatusCode: r.StatusCode, Body: r.Body}
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// All fields are optional. A zero Config talks to DefaultBaseURL without
// authentication.
type Config struct {
	// BaseURL overrides DefaultBaseURL (for example a test server). A
	// trailing slash is trimmed.
	BaseURL string
	// Credentials are sent as HTTP basic auth on every request when set.
	Credentials Credentials
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger receives debug and transport error logs.
	Logger Logger
	// Interceptors run around every request.
	Interceptors *InterceptorChain
	// HTTPClient replaces the pooled client used for requests.
	HTTPClient *http.Client
}
