package smartpan

import "time"

// LinkState is the wireless association state tracked by the link monitor.
type LinkState int

const (
	LinkDisconnected LinkState = iota
	LinkConnecting
	LinkConnected
)

func (s LinkState) String() string {
	switch s {
	case LinkConnecting:
		return "CONNECTING"
	case LinkConnected:
		return "CONNECTED"
	default:
		return "DISCONNECTED"
	}
}

// Band is the actuation severity derived from temperature vs. target.
type Band string

const (
	BandNormal   Band = "NORMAL"
	BandAlert    Band = "ALERT"
	BandCritical Band = "CRITICAL"
)

// TemperatureSample is one thermocouple poll. Fault mirrors the sensor's
// diagnostic code and never suppresses the numeric value.
type TemperatureSample struct {
	Value     float64   `json:"value"`
	Fault     bool      `json:"fault"`
	FaultCode int       `json:"fault_code,omitempty"`
	TakenAt   time.Time `json:"taken_at"`
}

// Step is one LED/buzzer output state held for a fixed duration.
type Step struct {
	LED    bool          `json:"led"`
	Buzzer bool          `json:"buzzer"`
	Hold   time.Duration `json:"hold"`
}

// ActuationOutput is the pattern one tick plays against the outputs.
type ActuationOutput struct {
	Band  Band   `json:"band"`
	Steps []Step `json:"steps"`
}

// SyncResult is a successfully decoded fetch-target response.
type SyncResult struct {
	TargetValue float64 `json:"target_value"`
}

// Reading is a persisted temperature sample.
type Reading struct {
	ID      int64     `json:"id"`
	TempC   float64   `json:"temp_c"`
	Fault   bool      `json:"fault"`
	TakenAt time.Time `json:"taken_at"`
}

// Event types recorded in the device log.
const (
	EventLinkUp       = "LINK_UP"
	EventLinkDown     = "LINK_DOWN"
	EventTargetUpdate = "TARGET_UPDATE"
	EventSensorFault  = "SENSOR_FAULT"
	EventSyncError    = "SYNC_ERROR"
)

// DeviceEvent is a single log entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LINK_UP | LINK_DOWN | TARGET_UPDATE | SENSOR_FAULT | SYNC_ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Counters accumulate over the device lifetime; published with every snapshot.
type Counters struct {
	Ticks          uint64 `json:"ticks"`
	Published      uint64 `json:"published"`
	SyncErrors     uint64 `json:"sync_errors"`
	ConnectRetries uint64 `json:"connect_retries"`
	TargetUpdates  uint64 `json:"target_updates"`
}

// StateSnapshot is what the diagnostics API and the websocket stream serve.
type StateSnapshot struct {
	Sample    TemperatureSample `json:"sample"`
	TargetC   float64           `json:"target_c"`
	Band      Band              `json:"band"`
	Link      string            `json:"link"`
	Counters  Counters          `json:"counters"`
	UpdatedAt time.Time         `json:"updated_at"`
}
