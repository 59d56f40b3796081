package detector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"running","model":"loaded","classes":{"0":"pothole"}}`))
			return
		}
		if r.URL.Path != "/api/detect/stream" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDetect_Detected(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"detected":true,"type":"Potholes","confidence":87.56,"timestamp":1700000000.5}`)
	c := NewClient(srv.URL+"/api/", time.Second)

	in, ok, err := c.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !ok {
		t.Fatalf("expected detection")
	}
	if in.Type != domain.HazardPothole || in.Confidence != 88 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestDetect_NothingDetected(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"detected":false}`)
	c := NewClient(srv.URL+"/api", time.Second)

	_, ok, err := c.Detect(context.Background())
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestDetect_UnknownClassIgnored(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"detected":true,"type":"cow","confidence":99}`)
	c := NewClient(srv.URL+"/api", time.Second)

	_, ok, err := c.Detect(context.Background())
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestDetect_ServerError(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, `{"error":"camera not available"}`)
	c := NewClient(srv.URL+"/api", time.Second)

	if _, _, err := c.Detect(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL+"/api", time.Second)

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "running" || h.Classes["0"] != "pothole" {
		t.Fatalf("unexpected health: %+v", h)
	}
}

func TestHazardTypeFor(t *testing.T) {
	cases := map[string]domain.HazardType{
		"pothole":      domain.HazardPothole,
		" Accident ":   domain.HazardAccident,
		"roadblocks":   domain.HazardRoadblock,
		"Construction": domain.HazardConstruction,
	}
	for label, want := range cases {
		got, ok := HazardTypeFor(label)
		if !ok || got != want {
			t.Fatalf("%q: got %q ok=%v", label, got, ok)
		}
	}
	if _, ok := HazardTypeFor("speed-bump"); ok {
		t.Fatalf("speed-bump should not map")
	}
}
