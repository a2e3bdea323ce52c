package handlers

import (
	"context"
	"time"

	"smartpan"
	"smartpan/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	snap      smartpan.StateSnapshot
	published []smartpan.StateSnapshot
}

func (m *mockMonitoring) Publish(snap smartpan.StateSnapshot) {
	m.published = append(m.published, snap)
}

func (m *mockMonitoring) GetState() smartpan.StateSnapshot {
	return m.snap
}

type mockEventLog struct {
	resp     []smartpan.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	calls    int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]smartpan.DeviceEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockReadings struct {
	resp      []smartpan.Reading
	err       error
	lastLimit int
	calls     int
}

func (m *mockReadings) Recent(ctx context.Context, limit int) ([]smartpan.Reading, error) {
	m.calls++
	m.lastLimit = limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
