package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harissh-lab/arm-scout/internal/api"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/admin"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/hazards"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/stream"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/system"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/vehicle"
	"github.com/Harissh-lab/arm-scout/internal/config"
	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/middleware"
	"github.com/Harissh-lab/arm-scout/internal/service"
	"github.com/Harissh-lab/arm-scout/internal/storage/memory"
	"github.com/Harissh-lab/arm-scout/internal/workers"
	"github.com/Harissh-lab/arm-scout/pkg/logger"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()
	kv := memory.New()

	store := service.NewHazardStore(ctx, kv, log, service.HazardStoreConfig{ResolutionThreshold: 3})
	tracker := service.NewTracker(ctx, nil, kv, log, service.TrackerConfig{})
	detections := service.NewDetectionLog(ctx, kv, log, 100)
	ingestor := service.NewIngestor(tracker, store, detections, log, service.IngestorConfig{})
	consensus := service.NewConsensus(store, log, service.ConsensusConfig{})
	monitor := workers.NewProximityMonitor(tracker, store, log, workers.ProximityMonitorConfig{VehicleID: "car-1"})

	cfg := &config.Config{APIKey: testAPIKey}
	return api.InitRouter(cfg, api.Handlers{
		Admin:   admin.NewHandler(log, store, ingestor, consensus),
		Hazards: hazards.NewHandler(log, store, consensus),
		Vehicle: vehicle.NewHandler(log, ingestor, tracker, monitor),
		System:  system.NewHandler(log, tracker, store, "car-1"),
		Stream:  stream.NewHub(log),
	}, log)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)
	if rr := do(t, h, http.MethodGet, "/api/v1/health", ""); rr.Code != http.StatusOK {
		t.Fatalf("health: %d", rr.Code)
	}
}

func TestRouter_AdminRequiresKey(t *testing.T) {
	h := newTestRouter(t)

	if rr := do(t, h, http.MethodDelete, "/api/v1/admin/hazards", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("without key: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, "/api/v1/admin/hazards", "", middleware.APIKeyHeader, testAPIKey); rr.Code != http.StatusOK {
		t.Fatalf("with key: %d", rr.Code)
	}
}

func TestRouter_DetectionNeedsPosition(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/detections", `{"type":"pothole","confidence":90}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/alerts", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("alerts without fix: %d", rr.Code)
	}
}

func TestRouter_DetectAlertAndResolve(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/position", `{"latitude":13.0827,"longitude":80.2707}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("position: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodPost, "/api/v1/detections", `{"type":"pothole","confidence":90}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("detection: %d %s", rr.Code, rr.Body.String())
	}
	hz := decode[domain.Hazard](t, rr)
	if hz.DetectedBy != domain.SourceCamera || hz.Coordinates.Latitude != 13.0827 {
		t.Fatalf("unexpected hazard: %+v", hz)
	}

	batch := decode[domain.AlertBatch](t, do(t, h, http.MethodGet, "/api/v1/alerts", ""))
	if len(batch.Alerts) != 1 || batch.Alerts[0].DistanceMeters != 0 || batch.VehicleID != "car-1" {
		t.Fatalf("unexpected alerts: %+v", batch)
	}

	log := decode[vehicle.DetectionsResponse](t, do(t, h, http.MethodGet, "/api/v1/detections", ""))
	if log.Total != 1 || log.Detections[0].HazardID != hz.ID {
		t.Fatalf("unexpected detection log: %+v", log)
	}

	for i := 1; i <= 3; i++ {
		body := fmt.Sprintf(`{"device_id":"device-%d"}`, i)
		rr = do(t, h, http.MethodPost, "/api/v1/hazards/"+hz.ID+"/gone", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("gone %d: %d %s", i, rr.Code, rr.Body.String())
		}
	}
	vote := decode[domain.VoteResponse](t, rr)
	if vote.Status != domain.HazardResolved {
		t.Fatalf("expected resolved after three reports, got %+v", vote)
	}

	active := decode[domain.ListHazardsResponse](t, do(t, h, http.MethodGet, "/api/v1/hazards", ""))
	if active.Total != 0 {
		t.Fatalf("resolved hazard still listed as active: %+v", active)
	}
	all := decode[domain.ListHazardsResponse](t, do(t, h, http.MethodGet, "/api/v1/hazards?status=all", ""))
	if all.Total != 1 {
		t.Fatalf("expected one hazard overall, got %d", all.Total)
	}

	progress := decode[domain.ResolutionProgress](t, do(t, h, http.MethodGet, "/api/v1/hazards/"+hz.ID+"/progress", ""))
	if progress.GoneReports != 3 || progress.RemainingReports != 0 {
		t.Fatalf("unexpected progress: %+v", progress)
	}
}

func TestRouter_UnknownHazard(t *testing.T) {
	h := newTestRouter(t)

	if rr := do(t, h, http.MethodGet, "/api/v1/hazards/nope", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("get: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, "/api/v1/hazards/nope/confirm", `{"device_id":"d1"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("confirm: %d", rr.Code)
	}
}
