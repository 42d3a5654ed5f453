package thriftdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	tdbhttp "github.com/fivetwenty-io/thriftdb/internal/http"
)

// Client talks to a ThriftDB service. Every method issues exactly one HTTP
// request and returns the response as received: 4xx and 5xx statuses are not
// errors. The error return is reserved for transport failures, which are
// passed through from net/http without translation.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL      string
	credentials  Credentials
	transport    *tdbhttp.Client
	interceptors *InterceptorChain
}

// New creates a client. A nil config is the same as an empty one. No network
// activity happens here.
func New(config *Config) (*Client, error) {
	if config == nil {
		config = &Config{}
	}

	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	var opts []tdbhttp.Option

	if !config.Credentials.IsZero() {
		opts = append(opts, tdbhttp.WithBasicAuth(config.Credentials.Username, config.Credentials.Password))
	}

	if config.Logger != nil {
		opts = append(opts, tdbhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, tdbhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, tdbhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		opts = append(opts, tdbhttp.WithHTTPClient(config.HTTPClient))
	}

	return &Client{
		baseURL:      baseURL,
		credentials:  config.Credentials,
		transport:    tdbhttp.NewClient(opts...),
		interceptors: config.Interceptors,
	}, nil
}

// NewWithCredentials creates a client for the hosted service using basic auth.
func NewWithCredentials(username, password string) (*Client, error) {
	return New(&Config{
		Credentials: Credentials{Username: username, Password: password},
	})
}

// BaseURL returns the service root used for every request.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credentials returns the credentials fixed at construction.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// MakeBucket creates a bucket. The service answers 201 for a new bucket and
// 409 if it already exists.
func (c *Client) MakeBucket(ctx context.Context, bucket string) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.bucketURL(bucket), nil)
}

// DeleteBucket deletes a bucket.
func (c *Client) DeleteBucket(ctx context.Context, bucket string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.bucketURL(bucket), nil)
}

// GetBucket fetches a bucket.
func (c *Client) GetBucket(ctx context.Context, bucket string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.bucketURL(bucket), nil)
}

// MakeCollection creates or updates a collection with the given JSON schema.
func (c *Client) MakeCollection(ctx context.Context, bucket, collection, schema string) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.collectionURL(bucket, collection), []byte(schema))
}

// DeleteCollection deletes a collection.
func (c *Client) DeleteCollection(ctx context.Context, bucket, collection string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.collectionURL(bucket, collection), nil)
}

// GetCollection fetches a collection.
func (c *Client) GetCollection(ctx context.Context, bucket, collection string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.collectionURL(bucket, collection), nil)
}

// PutItem creates or updates an item from a JSON document.
func (c *Client) PutItem(ctx context.Context, bucket, collection string, id ItemID, data string) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.itemURL(bucket, collection, id), []byte(data))
}

// DeleteItem deletes an item. The status returned for an item that does not
// exist depends on the service.
func (c *Client) DeleteItem(ctx context.Context, bucket, collection string, id ItemID) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.itemURL(bucket, collection, id), nil)
}

// GetItem fetches an item. query is sent as additional encoded parameters
// and may be nil.
func (c *Client) GetItem(ctx context.Context, bucket, collection string, id ItemID, query Query) (*Response, error) {
	return c.do(ctx, http.MethodGet, appendQuery(c.itemURL(bucket, collection, id), query), nil)
}

// PutItemMulti adds several items in one call. data is a JSON array.
func (c *Client) PutItemMulti(ctx context.Context, bucket, collection, data string) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.bulkURL(bucket, collection, BulkPutMulti), []byte(data))
}

// GetItemMulti fetches several items. An empty ids slice still sends "?ids=".
// query is merged after the ids parameter and may be nil. An "ids" key in
// query is not merged into the id list; it is sent as a second ids parameter.
func (c *Client) GetItemMulti(ctx context.Context, bucket, collection string, ids []ItemID, query Query) (*Response, error) {
	u := c.bulkURL(bucket, collection, BulkGetMulti) + idsFragment(ids)

	return c.do(ctx, http.MethodGet, appendQuery(u, query), nil)
}

// DeleteItemMulti deletes several items.
func (c *Client) DeleteItemMulti(ctx context.Context, bucket, collection string, ids []ItemID) (*Response, error) {
	u := c.bulkURL(bucket, collection, BulkDeleteMulti) + idsFragment(ids)

	return c.do(ctx, http.MethodPost, u, nil)
}

// ReindexCollection rebuilds a collection's index.
func (c *Client) ReindexCollection(ctx context.Context, bucket, collection string) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.bulkURL(bucket, collection, BulkReindex), nil)
}

// bucketURL builds base/bucket. Names are not escaped.
func (c *Client) bucketURL(bucket string) string {
	return c.baseURL + "/" + bucket
}

// collectionURL always appends the collection segment, even an empty one, so
// a collection call can never address the bucket itself.
func (c *Client) collectionURL(bucket, collection string) string {
	return c.bucketURL(bucket) + "/" + collection
}

func (c *Client) itemURL(bucket, collection string, id ItemID) string {
	return c.collectionURL(bucket, collection) + "/" + id.String()
}

func (c *Client) bulkURL(bucket, collection string, action BulkAction) string {
	return c.collectionURL(bucket, collection) + "/" + constants.BulkPathSegment + "/" + string(action)
}

// idsFragment renders "?ids=1,2,3". Each id is query-escaped but the
// separating commas, and commas inside ids, stay literal as the service
// expects.
func idsFragment(ids []ItemID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, escapeID(id))
	}

	return "?" + constants.BulkIDsParam + "=" + strings.Join(parts, constants.IDSeparator)
}

func escapeID(id ItemID) string {
	return strings.ReplaceAll(url.QueryEscape(id.String()), "%2C", constants.IDSeparator)
}

// appendQuery adds encoded parameters, joining with "&" when u already has a
// query string.
func appendQuery(u string, query Query) string {
	encoded := query.Encode()
	if encoded == "" {
		return u
	}

	if strings.Contains(u, "?") {
		return u + "&" + encoded
	}

	return u + "?" + encoded
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) (*Response, error) {
	req := &Request{
		Method: method,
		URL:    rawURL,
		Body:   body,
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	resp, err := c.send(ctx, req)

	if c.interceptors != nil {
		interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp, err)
		if interceptErr != nil && err == nil {
			return resp, interceptErr
		}
	}

	return resp, err
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.transport.Do(ctx, &tdbhttp.Request{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Body:    req.Body,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // transport errors are surfaced as-is
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return DefaultBaseURL, nil
	}

	raw = strings.TrimRight(raw, "/")

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidBaseURL, raw, constants.ErrUnsupportedURL)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidBaseURL, raw, constants.ErrNoHostInURL)
	}

	return raw, nil
}
