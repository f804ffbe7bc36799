package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeOrderPlatform serves BigCommerce-shaped order responses.
// Unknown orders answer 404.
type FakeOrderPlatform struct {
	server *httptest.Server

	mu       sync.Mutex
	orders   map[string]string // order number → JSON body
	byEmail  map[string]string // email → JSON body
	status   int               // non-zero: every request answers with this status
	requests []*http.Request
}

// NewFakeOrderPlatform starts the fake platform; it is closed via t.Cleanup.
func NewFakeOrderPlatform(t *testing.T) *FakeOrderPlatform {
	t.Helper()
	p := &FakeOrderPlatform{
		orders:  make(map[string]string),
		byEmail: make(map[string]string),
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.server.Close)
	return p
}

// URL returns the API base the client should use.
func (p *FakeOrderPlatform) URL() string {
	return p.server.URL
}

// AddOrder registers the body returned for GET /orders/{number}.
func (p *FakeOrderPlatform) AddOrder(number, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders[number] = body
}

// AddEmailResult registers the body returned for GET /orders?email=...
func (p *FakeOrderPlatform) AddEmailResult(email, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byEmail[email] = body
}

// FailWith makes every subsequent request answer with status.
func (p *FakeOrderPlatform) FailWith(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

// Requests returns every request received so far.
func (p *FakeOrderPlatform) Requests() []*http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*http.Request, len(p.requests))
	copy(out, p.requests)
	return out
}

func (p *FakeOrderPlatform) handle(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Clone(r.Context()))
	status := p.status
	var body string
	var found bool
	switch {
	case r.URL.Path == "/orders":
		body, found = p.byEmail[r.URL.Query().Get("email")]
		if !found && status == 0 {
			// The platform answers an empty collection with 204
			p.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	case strings.HasPrefix(r.URL.Path, "/orders/"):
		body, found = p.orders[strings.TrimPrefix(r.URL.Path, "/orders/")]
	}
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case status != 0:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"title":"upstream failure"}`))
	case !found:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`[{"status":404,"message":"The requested resource was not found."}]`))
	default:
		_, _ = w.Write([]byte(body))
	}
}
