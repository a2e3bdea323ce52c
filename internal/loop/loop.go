package loop

import (
	"context"
	"time"

	"smartpan"
	"smartpan/internal/actuate"
	"smartpan/internal/logger"
)

// Dependencies are taken as interfaces so tests can drive the loop with fakes.

type SensorReader interface {
	Read() smartpan.TemperatureSample
}

type Connectivity interface {
	EnsureConnected() smartpan.LinkState
	Retries() uint64
}

type Syncer interface {
	Publish(ctx context.Context, sample smartpan.TemperatureSample) error
	FetchTarget(ctx context.Context) (smartpan.SyncResult, error)
}

type Setpoints interface {
	Current() float64
	TryUpdate(res smartpan.SyncResult) bool
}

type Actuation interface {
	Apply(ctx context.Context, out smartpan.ActuationOutput)
	SelfTest(ctx context.Context)
}

type EventSink interface {
	Append(ctx context.Context, e smartpan.DeviceEvent) error
}

type ReadingSink interface {
	Record(ctx context.Context, s smartpan.TemperatureSample) error
}

type StatusSink interface {
	Publish(snap smartpan.StateSnapshot)
}

// Loop is the single-goroutine control driver. Each tick: read the sensor,
// refresh the link, best-effort publish and fetch when connected, then play
// the actuation pattern whose holds pace the loop. Nothing that happens
// mid-tick may terminate the loop; every failure is logged and the tick
// completes with actuation.
type Loop struct {
	reader   SensorReader
	links    Connectivity
	sync     Syncer
	targets  Setpoints
	exec     Actuation
	events   EventSink
	readings ReadingSink
	status   StatusSink
	log      *logger.Logger

	counters smartpan.Counters
	prevLink smartpan.LinkState
}

func New(
	reader SensorReader,
	links Connectivity,
	sync Syncer,
	targets Setpoints,
	exec Actuation,
	events EventSink,
	readings ReadingSink,
	status StatusSink,
	log *logger.Logger,
) *Loop {
	return &Loop{
		reader:   reader,
		links:    links,
		sync:     sync,
		targets:  targets,
		exec:     exec,
		events:   events,
		readings: readings,
		status:   status,
		log:      log,
		prevLink: smartpan.LinkDisconnected,
	}
}

// Run executes the boot self-test, then ticks until ctx is canceled. The
// device has no operator interaction once started; cancellation exists only
// for graceful process shutdown.
func (l *Loop) Run(ctx context.Context) {
	l.exec.SelfTest(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		l.tick(ctx)
	}
}

// tick runs one full cycle.
func (l *Loop) tick(ctx context.Context) {
	l.counters.Ticks++

	sample := l.reader.Read()
	if sample.Fault {
		l.log.Warnw("sensor_fault", "code", sample.FaultCode, "temp_c", sample.Value)
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventSensorFault,
			Description: "Thermocouple reported a fault",
			Metadata:    map[string]any{"code": sample.FaultCode, "temp_c": sample.Value},
		})
	}

	state := l.links.EnsureConnected()
	l.observeLink(ctx, state)
	if state == smartpan.LinkConnected {
		l.syncOnce(ctx, sample)
	}

	if err := l.readings.Record(ctx, sample); err != nil {
		l.log.Warnw("reading_record_failed", "err", err)
	}

	target := l.targets.Current()
	out := actuate.Decide(sample.Value, target)

	l.counters.ConnectRetries = l.links.Retries()
	l.status.Publish(smartpan.StateSnapshot{
		Sample:    sample,
		TargetC:   target,
		Band:      out.Band,
		Link:      state.String(),
		Counters:  l.counters,
		UpdatedAt: time.Now().UTC(),
	})

	l.exec.Apply(ctx, out)
}

// syncOnce performs at most one publish and one fetch. Either failure is
// logged and counted; the tick proceeds to actuation regardless.
func (l *Loop) syncOnce(ctx context.Context, sample smartpan.TemperatureSample) {
	if err := l.sync.Publish(ctx, sample); err != nil {
		l.counters.SyncErrors++
		l.log.Warnw("publish_failed", "err", err)
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventSyncError,
			Description: "Publish failed",
			Metadata:    map[string]any{"err": err.Error()},
		})
	} else {
		l.counters.Published++
	}

	res, err := l.sync.FetchTarget(ctx)
	if err != nil {
		l.counters.SyncErrors++
		l.log.Warnw("fetch_target_failed", "err", err)
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventSyncError,
			Description: "Fetch target failed",
			Metadata:    map[string]any{"err": err.Error()},
		})
		return
	}
	if l.targets.TryUpdate(res) {
		l.counters.TargetUpdates++
		l.log.Infow("target_updated", "target_c", res.TargetValue)
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventTargetUpdate,
			Description: "Target temperature updated from remote",
			Metadata:    map[string]any{"target_c": res.TargetValue},
		})
	}
}

// observeLink records link transitions in the device log.
func (l *Loop) observeLink(ctx context.Context, state smartpan.LinkState) {
	if state == l.prevLink {
		return
	}
	switch {
	case state == smartpan.LinkConnected:
		l.log.Infow("link_up")
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventLinkUp,
			Description: "Wireless link established",
		})
	case l.prevLink == smartpan.LinkConnected:
		l.log.Warnw("link_down", "retries", l.links.Retries())
		l.appendEvent(ctx, smartpan.DeviceEvent{
			Type:        smartpan.EventLinkDown,
			Description: "Wireless link lost",
		})
	}
	l.prevLink = state
}

func (l *Loop) appendEvent(ctx context.Context, e smartpan.DeviceEvent) {
	if err := l.events.Append(ctx, e); err != nil {
		l.log.Warnw("event_append_failed", "type", e.Type, "err", err)
	}
}
