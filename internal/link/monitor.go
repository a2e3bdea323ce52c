package link

import (
	"time"

	"smartpan"
	"smartpan/internal/hardware"
)

// Credentials are the wireless association parameters, fixed at startup.
type Credentials struct {
	SSID     string
	Password string
}

// Monitor owns the link state. It is written only by the control loop; the
// loop publishes a copy of the state into each snapshot for the API.
type Monitor struct {
	dev           hardware.Link
	creds         Credentials
	retryInterval time.Duration
	state         smartpan.LinkState
	lastAttempt   time.Time
	retries       uint64
	now           func() time.Time
}

const defaultRetryInterval = 500 * time.Millisecond

func NewMonitor(dev hardware.Link, creds Credentials, retryInterval time.Duration) *Monitor {
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	return &Monitor{
		dev:           dev,
		creds:         creds,
		retryInterval: retryInterval,
		state:         smartpan.LinkDisconnected,
		now:           time.Now,
	}
}

// State returns the link state as of the last EnsureConnected call.
func (m *Monitor) State() smartpan.LinkState { return m.state }

// Retries returns the number of connect attempts issued so far.
func (m *Monitor) Retries() uint64 { return m.retries }

// Status returns the raw link status code for diagnostics.
func (m *Monitor) Status() int { return m.dev.Status() }

// EnsureConnected refreshes the link state and, when the link is down, issues
// at most one fire-and-forget connect attempt per retry interval. It never
// waits for the association to complete; the outcome is observed on a later
// tick. Absence of connectivity is an expected long-running condition.
func (m *Monitor) EnsureConnected() smartpan.LinkState {
	if m.dev.IsConnected() {
		m.state = smartpan.LinkConnected
		return m.state
	}

	if m.state == smartpan.LinkConnected {
		m.state = smartpan.LinkDisconnected
	}

	now := m.now()
	if m.lastAttempt.IsZero() || now.Sub(m.lastAttempt) >= m.retryInterval {
		m.dev.Connect(m.creds.SSID, m.creds.Password)
		m.lastAttempt = now
		m.retries++
		m.state = smartpan.LinkConnecting
	}
	return m.state
}
