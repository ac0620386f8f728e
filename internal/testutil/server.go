// Package testutil provides test helpers for the mpp CLI.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Request is a request received by a MockServer.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// MockServer is a test HTTP server that serves canned REST responses.
type MockServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	handlers []handler
	requests []Request
}

type handler struct {
	method  string
	path    string
	respond func(http.ResponseWriter, *http.Request)
}

// NewMockServer creates a new mock backend. It is closed via t.Cleanup.
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		ms.mu.Lock()
		ms.requests = append(ms.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		handlers := ms.handlers
		ms.mu.Unlock()

		pathMatched := false
		for _, h := range handlers {
			if h.path != r.URL.Path {
				continue
			}
			pathMatched = true
			if h.method == r.Method {
				h.respond(w, r)
				return
			}
		}

		if pathMatched {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		http.Error(w, "no handler matched request", http.StatusNotFound)
	}))

	t.Cleanup(ms.Server.Close)
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.Server.URL
}

// Handle registers a handler for method and exact path.
func (ms *MockServer) Handle(method, path string, respond func(http.ResponseWriter, *http.Request)) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handlers = append(ms.handlers, handler{method: method, path: path, respond: respond})
}

// HandleREST responds to method and path with a static JSON body.
func (ms *MockServer) HandleREST(method, path string, statusCode int, responseBody any) {
	data, err := json.Marshal(responseBody)
	if err != nil {
		panic("testutil: failed to marshal response: " + err.Error())
	}
	ms.HandleRaw(method, path, statusCode, data)
}

// HandleRaw responds to method and path with body verbatim.
func (ms *MockServer) HandleRaw(method, path string, statusCode int, body []byte) {
	ms.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write(body)
	})
}

// HandleOK responds with a success envelope wrapping data.
func (ms *MockServer) HandleOK(method, path string, data any) {
	ms.HandleREST(method, path, http.StatusOK, Envelope(200, "success", data))
}

// Envelope builds a backend response body.
func Envelope(code int, msg string, data any) map[string]any {
	return map[string]any{"code": code, "msg": msg, "data": data}
}

// Requests returns the requests received so far.
func (ms *MockServer) Requests() []Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]Request, len(ms.requests))
	copy(out, ms.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (ms *MockServer) LastRequest() (Request, bool) {
	reqs := ms.Requests()
	if len(reqs) == 0 {
		return Request{}, false
	}
	return reqs[len(reqs)-1], true
}
