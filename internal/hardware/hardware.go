package hardware

// Sensor is the thermocouple black box. Read returns the last conversion
// (possibly stale when faulted); Error exposes the chip diagnostic code and is
// informational only.
type Sensor interface {
	Read() float64
	Error() int
}

// Actuator is one binary output (LED or buzzer) with no feedback path.
type Actuator interface {
	Set(on bool)
}

// Link is the wireless association black box. Connect is fire-and-forget;
// the outcome is observed on a later IsConnected poll.
type Link interface {
	IsConnected() bool
	Status() int
	Connect(ssid, password string)
}

// Sensor diagnostic codes. Zero means the last conversion was valid.
const (
	SensorOK          = 0
	SensorOpenCircuit = 1
	SensorShortGround = 2
	SensorShortVCC    = 4
)
