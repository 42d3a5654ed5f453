// Package thriftdbtest provides an in-memory ThriftDB service for tests.
//
// The fake follows the status codes of the hosted API: creating returns 201,
// updating or deleting an existing resource returns 200, repeating a create
// returns 409 and anything addressed under a missing bucket or collection
// returns 404. Schemas are stored but not enforced.
package thriftdbtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Server is a fake ThriftDB service.
type Server struct {
	mu       sync.RWMutex
	buckets  map[string]*bucket
	requests []RecordedRequest
	username string
	password string
	auth     bool
	router   chi.Router
	server   *httptest.Server
}

// RecordedRequest is a request seen by the server. RequestURI is the raw
// path and query as sent by the client.
type RecordedRequest struct {
	Method     string
	RequestURI string
	Body       []byte
}

type bucket struct {
	collections map[string]*collection
}

type collection struct {
	schema json.RawMessage
	items  map[string]json.RawMessage
}

// Option configures a Server.
type Option func(*Server)

// WithBasicAuth makes the server answer 401 to requests that do not carry
// these credentials.
func WithBasicAuth(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
		s.auth = true
	}
}

// NewServer starts a fake service. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := NewHandler(opts...)
	s.server = httptest.NewServer(s)

	return s
}

// NewHandler returns a fake service without starting a listener, for use as
// an http.Handler.
func NewHandler(opts ...Option) *Server {
	s := &Server{
		buckets: make(map[string]*bucket),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()

	return s
}

// URL returns the base URL of a started server.
func (s *Server) URL() string {
	if s.server == nil {
		return ""
	}

	return s.server.URL
}

// Close shuts a started server down.
func (s *Server) Close() {
	if s.server != nil {
		s.server.Close()
	}
}

// Requests returns the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{Method: r.Method, RequestURI: r.RequestURI, Body: body})
	s.mu.Unlock()

	if s.auth {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.username || pass != s.password {
			writeError(w, http.StatusUnauthorized, "invalid credentials")

			return
		}
	}

	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.Route("/{bucket}", func(r chi.Router) {
		r.Put("/", s.putBucket)
		r.Get("/", s.getBucket)
		r.Delete("/", s.deleteBucket)

		r.Route("/{collection}", func(r chi.Router) {
			r.Put("/", s.putCollection)
			r.Get("/", s.getCollection)
			r.Delete("/", s.deleteCollection)

			r.Post("/_bulk/put_multi", s.putMulti)
			r.Get("/_bulk/get_multi", s.getMulti)
			r.Post("/_bulk/delete_multi", s.deleteMulti)
			r.Post("/_bulk/reindex", s.reindex)

			r.Put("/{id}", s.putItem)
			r.Get("/{id}", s.getItem)
			r.Delete("/{id}", s.deleteItem)
		})
	})

	return r
}

func param(r *http.Request, key string) string {
	value := chi.URLParam(r, key)

	unescaped, err := url.PathUnescape(value)
	if err != nil {
		return value
	}

	return unescaped
}

func (s *Server) putBucket(w http.ResponseWriter, r *http.Request) {
	name := param(r, "bucket")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[name]; ok {
		writeError(w, http.StatusConflict, "bucket already exists")

		return
	}

	s.buckets[name] = &bucket{collections: make(map[string]*collection)}
	writeJSON(w, http.StatusCreated, map[string]string{"bucket": name})
}

func (s *Server) getBucket(w http.ResponseWriter, r *http.Request) {
	name := param(r, "bucket")

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[name]
	if !ok {
		writeError(w, http.StatusNotFound, "bucket not found")

		return
	}

	names := make([]string, 0, len(b.collections))
	for collName := range b.collections {
		names = append(names, collName)
	}

	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string]interface{}{"bucket": name, "collections": names})
}

func (s *Server) deleteBucket(w http.ResponseWriter, r *http.Request) {
	name := param(r, "bucket")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[name]; !ok {
		writeError(w, http.StatusNotFound, "bucket not found")

		return
	}

	delete(s.buckets, name)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

// lookup returns the addressed collection, writing a 404 when the bucket or
// collection does not exist. Callers hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*bucket, *collection, bool) {
	b, ok := s.buckets[param(r, "bucket")]
	if !ok {
		writeError(w, http.StatusNotFound, "bucket not found")

		return nil, nil, false
	}

	c, ok := b.collections[param(r, "collection")]
	if !ok {
		writeError(w, http.StatusNotFound, "collection not found")

		return b, nil, false
	}

	return b, c, true
}

func (s *Server) putCollection(w http.ResponseWriter, r *http.Request) {
	schema, ok := readJSON(w, r)
	if !ok {
		return
	}

	name := param(r, "collection")

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[param(r, "bucket")]
	if !ok {
		writeError(w, http.StatusNotFound, "bucket not found")

		return
	}

	if c, exists := b.collections[name]; exists {
		c.schema = schema
		writeJSON(w, http.StatusOK, map[string]string{"collection": name})

		return
	}

	b.collections[name] = &collection{schema: schema, items: make(map[string]json.RawMessage)}
	writeJSON(w, http.StatusCreated, map[string]string{"collection": name})
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection": param(r, "collection"),
		"schema":     c.schema,
		"count":      len(c.items),
	})
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, _, ok := s.lookup(w, r)
	if !ok {
		return
	}

	name := param(r, "collection")
	delete(b.collections, name)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

func (s *Server) putItem(w http.ResponseWriter, r *http.Request) {
	data, ok := readJSON(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	id := param(r, "id")
	status := http.StatusCreated

	if _, exists := c.items[id]; exists {
		status = http.StatusOK
	}

	c.items[id] = data
	writeJSON(w, status, map[string]string{"id": id})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	data, ok := c.items[param(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "item not found")

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	id := param(r, "id")
	if _, exists := c.items[id]; !exists {
		writeError(w, http.StatusNotFound, "item not found")

		return
	}

	delete(c.items, id)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) putMulti(w http.ResponseWriter, r *http.Request) {
	raw, ok := readJSON(w, r)
	if !ok {
		return
	}

	var docs []map[string]json.RawMessage

	err := json.Unmarshal(raw, &docs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "expected a JSON array of objects")

		return
	}

	items := make(map[string]json.RawMessage, len(docs))

	for _, doc := range docs {
		id, ok := documentID(doc)
		if !ok {
			writeError(w, http.StatusBadRequest, "every item needs an _id")

			return
		}

		encoded, _ := json.Marshal(doc)
		items[id] = encoded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	for id, data := range items {
		c.items[id] = data
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": len(items)})
}

func (s *Server) getMulti(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	found := make([]json.RawMessage, 0)

	for _, id := range bulkIDs(r) {
		if data, exists := c.items[id]; exists {
			found = append(found, data)
		}
	}

	writeJSON(w, http.StatusOK, found)
}

func (s *Server) deleteMulti(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	deleted := 0

	for _, id := range bulkIDs(r) {
		if _, exists := c.items[id]; exists {
			delete(c.items, id)
			deleted++
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": deleted})
}

func (s *Server) reindex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": len(c.items)})
}

// bulkIDs splits the ids parameter. Empty segments are dropped.
func bulkIDs(r *http.Request) []string {
	var ids []string

	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

// documentID reads "_id" as either a JSON string or number.
func documentID(doc map[string]json.RawMessage) (string, bool) {
	raw, ok := doc["_id"]
	if !ok {
		return "", false
	}

	var id string
	if json.Unmarshal(raw, &id) == nil {
		return id, id != ""
	}

	var number json.Number
	if json.Unmarshal(raw, &number) == nil {
		return number.String(), true
	}

	return "", false
}

func readJSON(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	var raw json.RawMessage

	err := json.NewDecoder(r.Body).Decode(&raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")

		return nil, false
	}

	return raw, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
