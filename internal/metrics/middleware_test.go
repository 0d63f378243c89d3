package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/profiles/{id}", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":1}`))
		})
		r.Post("/matches", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})
		r.Post("/matches/export", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("ATTRIBUTE,1,2\n"))
			_, _ = w.Write([]byte("smoker,No,No\n"))
		})
	})
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_RoutePatternLabel(t *testing.T) {
	r := newRouter()
	const pattern = "/api/v1/profiles/{id}"

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", pattern, "200"))
	for _, path := range []string{"/api/v1/profiles/1", "/api/v1/profiles/42", "/api/v1/profiles/99"} {
		if rr := serve(r, "GET", path); rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rr.Code)
		}
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", pattern, "200")) - before; got != 3 {
		t.Errorf("requests under %s = %v, want 3", pattern, got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/profiles/42", "200")); got != 0 {
		t.Errorf("raw path must not become a label, got %v", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_ResponseBytes(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpResponseBytes.WithLabelValues("POST", "/api/v1/matches/export"))
	rr := serve(r, "POST", "/api/v1/matches/export")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	want := float64(len("ATTRIBUTE,1,2\n") + len("smoker,No,No\n"))
	if got := testutil.ToFloat64(httpResponseBytes.WithLabelValues("POST", "/api/v1/matches/export")) - before; got != want {
		t.Errorf("bytes = %v, want %v", got, want)
	}
	if !strings.HasPrefix(rr.Body.String(), "ATTRIBUTE") {
		t.Errorf("body = %q", rr.Body.String())
	}

	// a header-only response adds nothing
	before = testutil.ToFloat64(httpResponseBytes.WithLabelValues("POST", "/api/v1/matches"))
	serve(r, "POST", "/api/v1/matches")
	if got := testutil.ToFloat64(httpResponseBytes.WithLabelValues("POST", "/api/v1/matches")) - before; got != 0 {
		t.Errorf("bytes for empty body = %v", got)
	}
}

func TestMiddleware_StatusLabel(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/v1/matches", "422"))
	serve(r, "POST", "/api/v1/matches")
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/v1/matches", "422")) - before; got != 1 {
		t.Errorf("422 count = %v, want 1", got)
	}
}

func TestMiddleware_UnmatchedRouteIsUnknown(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	if rr := serve(r, "GET", "/tenants/7"); rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404")) - before; got != 1 {
		t.Errorf("unknown 404 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(httpResponseBytes.WithLabelValues("GET", "/tenants/7")); got != 0 {
		t.Errorf("unmatched path leaked into labels: %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/v1/profiles/{id}", "/api/v1/profiles/{id}"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
