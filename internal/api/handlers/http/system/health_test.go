package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harissh-lab/arm-scout/pkg/logger"
)

type stubStatus struct {
	active bool
	n      int
}

func (s stubStatus) IsActive() bool { return s.active }
func (s stubStatus) Len() int       { return s.n }

func TestSystemHealth(t *testing.T) {
	st := stubStatus{active: true, n: 3}
	h := NewHandler(logger.Discard(), st, st, "car-1")

	rr := httptest.NewRecorder()
	h.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var got HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || !got.Tracking || got.Hazards != 3 || got.VehicleID != "car-1" {
		t.Fatalf("unexpected health: %+v", got)
	}
}
