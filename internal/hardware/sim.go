package hardware

import (
	"sync"
	"time"
)

// ----------- Simulation constants -----------
const (
	ambientC        = 25.0 // resting temperature °C
	heatRateCPerSec = 3.0  // °C per second while heating
	coolRateCPerSec = 1.5  // °C per second while cooling
)

// SimSensor fakes a thermocouple over a heat-then-cool cycle so the binary
// runs end to end without the chip attached.
type SimSensor struct {
	mu       sync.Mutex
	tempC    float64
	peakC    float64
	heating  bool
	lastRead time.Time
	reads    int
	// faultEvery > 0 injects an open-circuit code every Nth read
	faultEvery int
	now        func() time.Time
}

// NewSimSensor returns a sensor that ramps from ambient toward peakC and back.
func NewSimSensor(peakC float64, faultEvery int) *SimSensor {
	return &SimSensor{
		tempC:      ambientC,
		peakC:      peakC,
		heating:    true,
		faultEvery: faultEvery,
		now:        time.Now,
	}
}

func (s *SimSensor) Read() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastRead.IsZero() {
		elapsed := now.Sub(s.lastRead).Seconds()
		if s.heating {
			s.tempC += heatRateCPerSec * elapsed
			if s.tempC >= s.peakC {
				s.tempC = s.peakC
				s.heating = false
			}
		} else {
			s.tempC -= coolRateCPerSec * elapsed
			if s.tempC <= ambientC {
				s.tempC = ambientC
				s.heating = true
			}
		}
	}
	s.lastRead = now
	s.reads++
	return s.tempC
}

func (s *SimSensor) Error() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.faultEvery > 0 && s.reads > 0 && s.reads%s.faultEvery == 0 {
		return SensorOpenCircuit
	}
	return SensorOK
}

// SimLink fakes the wireless association: it comes up after a configured
// number of connect attempts and can drop periodically to exercise reconnects.
type SimLink struct {
	mu           sync.Mutex
	attempts     int
	connectAfter int // attempts required before the link reports connected
	dropEvery    int // > 0 drops the link every Nth status poll
	polls        int
	connected    bool
}

// Link status codes, mirroring typical WLAN station states.
const (
	linkStatusIdle       = 0
	linkStatusConnecting = 1
	linkStatusGotIP      = 3
)

func NewSimLink(connectAfter, dropEvery int) *SimLink {
	if connectAfter < 1 {
		connectAfter = 1
	}
	return &SimLink{connectAfter: connectAfter, dropEvery: dropEvery}
}

func (l *SimLink) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.polls++
	if l.connected && l.dropEvery > 0 && l.polls%l.dropEvery == 0 {
		l.connected = false
		l.attempts = 0
	}
	return l.connected
}

func (l *SimLink) Status() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.connected:
		return linkStatusGotIP
	case l.attempts > 0:
		return linkStatusConnecting
	default:
		return linkStatusIdle
	}
}

func (l *SimLink) Connect(ssid, password string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts++
	if l.attempts >= l.connectAfter {
		l.connected = true
	}
}

// SimActuator records the last commanded state of one output.
type SimActuator struct {
	mu sync.Mutex
	on bool
}

func NewSimActuator() *SimActuator { return &SimActuator{} }

func (a *SimActuator) Set(on bool) {
	a.mu.Lock()
	a.on = on
	a.mu.Unlock()
}

// On reports the last commanded state.
func (a *SimActuator) On() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.on
}
