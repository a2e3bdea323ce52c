package service

import (
	"context"

	"smartpan"
	"smartpan/internal/repository"
)

// Monitoring exposes the live device snapshot: last sample, target, band,
// link state and counters. Publish is called by the control loop once per
// tick; GetState serves the HTTP and websocket readers.
type Monitoring interface {
	Publish(snap smartpan.StateSnapshot)
	GetState() smartpan.StateSnapshot
}

// EventLog exposes the append-only device log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]smartpan.DeviceEvent, error)
}

// Readings exposes recently persisted temperature samples.
type Readings interface {
	Recent(ctx context.Context, limit int) ([]smartpan.Reading, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Monitoring
	EventLog
	Readings
}

// NewService wires the repository layer into concrete services. initialTarget
// seeds the baseline snapshot served before the loop publishes its first tick.
func NewService(repos *repository.Repository, initialTarget float64) *Service {
	return &Service{
		Monitoring: NewMonitoringService(initialTarget),
		EventLog:   NewEventLogService(repos.EventRepo),
		Readings:   NewReadingsService(repos.ReadingRepo),
	}
}
