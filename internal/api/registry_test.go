package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

type fakeEndpoint struct {
	method       string
	path         string
	requiresInit bool
	hits         int
}

func (f *fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return f.method, f.path, func(w http.ResponseWriter, r *http.Request) {
		f.hits++
		w.WriteHeader(http.StatusOK)
	}
}

func (f *fakeEndpoint) RequiresInit() bool { return f.requiresInit }

func (f *fakeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{Use: "fake"}
}

func TestRegistryRoutes(t *testing.T) {
	open := &fakeEndpoint{method: "GET", path: "/open"}
	gated := &fakeEndpoint{method: "POST", path: "/gated", requiresInit: true}

	reg := NewRegistry()
	reg.Register(open)
	reg.Register(gated)

	var wrapped int
	middleware := func(next http.HandlerFunc) http.HandlerFunc {
		wrapped++
		return next
	}

	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, middleware)

	if wrapped != 1 {
		t.Errorf("expected middleware around 1 endpoint, wrapped %d", wrapped)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/open", nil))
	if rec.Code != http.StatusOK || open.hits != 1 {
		t.Errorf("open route not served: code=%d hits=%d", rec.Code, open.hits)
	}

	// Method mismatch falls through to 405.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/gated", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for wrong method, got %d", rec.Code)
	}
}

func TestRegistryBuildCommands(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeEndpoint{method: "GET", path: "/a"})
	reg.Register(&fakeEndpoint{method: "GET", path: "/b"})

	cmd := reg.BuildCommands(func() string { return "http://localhost:16009" })
	if cmd.Use != "api" {
		t.Errorf("unexpected root use: %s", cmd.Use)
	}
	if len(cmd.Commands()) != 2 {
		t.Errorf("expected 2 subcommands, got %d", len(cmd.Commands()))
	}

	if got := len(reg.Endpoints()); got != 2 {
		t.Errorf("expected 2 endpoints, got %d", got)
	}
}
