// internal/testutil/mocks.go
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// Nota: los mocks de ports viven en los paquetes que los usan.
// Este archivo contiene solo utilidades genéricas sin dependencias circulares.

// Route is a canned HTTP response keyed by "METHOD /path".
type Route struct {
	Status int
	Body   string
	// Sequence, when set, is served in order; the last entry repeats.
	Sequence []Route
}

// FakeServer is an httptest server serving canned routes and recording hits.
type FakeServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]*Route
	served map[string]int
	hits   []*http.Request
}

// NewFakeServer starts a server for the given routes and closes it on test cleanup.
func NewFakeServer(t *testing.T, routes map[string]Route) *FakeServer {
	t.Helper()
	fs := &FakeServer{
		routes: make(map[string]*Route, len(routes)),
		served: make(map[string]int),
	}
	for k, r := range routes {
		r := r
		fs.routes[k] = &r
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FakeServer) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	key := r.Method + " " + r.URL.Path
	fs.hits = append(fs.hits, r.Clone(context.Background()))
	route, ok := fs.routes[key]
	n := fs.served[key]
	fs.served[key] = n + 1
	fs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	resp := *route
	if len(route.Sequence) > 0 {
		if n >= len(route.Sequence) {
			n = len(route.Sequence) - 1
		}
		resp = route.Sequence[n]
	}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

// Hits returns how many times "METHOD /path" was requested.
func (fs *FakeServer) Hits(key string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.served[key]
}

// Requests returns a copy of every request seen so far.
func (fs *FakeServer) Requests() []*http.Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]*http.Request(nil), fs.hits...)
}

// NoSleep is a sleep function that returns immediately unless ctx is done.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
