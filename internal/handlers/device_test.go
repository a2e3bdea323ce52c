package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartpan"
	"smartpan/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if resp["status"] != statusOK {
		t.Fatalf("health body = %v", resp)
	}
}

func TestGetState_ReturnsSnapshot(t *testing.T) {
	mon := &mockMonitoring{snap: smartpan.StateSnapshot{
		Sample:    smartpan.TemperatureSample{Value: 120, Fault: false},
		TargetC:   50,
		Band:      smartpan.BandAlert,
		Link:      "CONNECTED",
		Counters:  smartpan.Counters{Ticks: 42, Published: 40},
		UpdatedAt: time.Now().UTC(),
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/device/state", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("state status = %d, body = %s", w.Code, w.Body.String())
	}
	var snap smartpan.StateSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if snap.Sample.Value != 120 || snap.Band != smartpan.BandAlert || snap.Counters.Ticks != 42 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestGetReadings_PassesLimitAndWrapsResult(t *testing.T) {
	rd := &mockReadings{resp: []smartpan.Reading{
		{ID: 2, TempC: 130.0},
		{ID: 1, TempC: 125.5, Fault: true},
	}}
	r := newTestRouter(&service.Service{Readings: rd})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings?limit=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("readings status = %d, body = %s", w.Code, w.Body.String())
	}
	if rd.lastLimit != 2 {
		t.Fatalf("limit = %d, want 2", rd.lastLimit)
	}
	var resp struct {
		Count    int                `json:"count"`
		Readings []smartpan.Reading `json:"readings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal readings: %v", err)
	}
	if resp.Count != 2 || len(resp.Readings) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Readings[0].ID != 2 {
		t.Fatalf("order not preserved: %+v", resp.Readings)
	}
}

func TestGetReadings_InvalidLimitIsBadRequest(t *testing.T) {
	rd := &mockReadings{}
	r := newTestRouter(&service.Service{Readings: rd})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings?limit=abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if rd.calls != 0 {
		t.Fatalf("service must not be called with an invalid limit")
	}
}

func TestGetReadings_ServiceErrorIs500(t *testing.T) {
	rd := &mockReadings{err: errors.New("db down")}
	r := newTestRouter(&service.Service{Readings: rd})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
