package sensor

import (
	"time"

	"smartpan"
	"smartpan/internal/hardware"
)

// Reader wraps the thermocouple black box and stamps each poll.
type Reader struct {
	dev hardware.Sensor
}

func NewReader(dev hardware.Sensor) *Reader {
	return &Reader{dev: dev}
}

// Read always delivers a sample. A non-zero diagnostic code sets Fault but the
// numeric value is returned regardless; the loop never branches on Fault for
// control decisions.
func (r *Reader) Read() smartpan.TemperatureSample {
	value := r.dev.Read()
	code := r.dev.Error()
	return smartpan.TemperatureSample{
		Value:     value,
		Fault:     code != hardware.SensorOK,
		FaultCode: code,
		TakenAt:   time.Now().UTC(),
	}
}
