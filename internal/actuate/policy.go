package actuate

import (
	"time"

	"smartpan"
)

// ----------- Band thresholds and holds -----------
const (
	// CriticalMarginC above target switches from the chirp pattern to the
	// rapid alarm chatter.
	CriticalMarginC = 100.0

	criticalHold  = 250 * time.Millisecond
	chirpHold     = 100 * time.Millisecond
	alertLEDHold  = 2500 * time.Millisecond
	alertIdleHold = 2500 * time.Millisecond
	normalHold    = 1 * time.Second
)

// Decide maps a temperature and target to the output pattern for one tick.
// It is a pure function: no hidden state, no hysteresis. Bands are checked
// hottest first; the first match wins.
//
// Critical (temp >= target+100): LED and buzzer on for 250ms, then the next
// tick re-evaluates, producing a rapid alarm chatter.
//
// Alert (target <= temp < target+100): a single 100ms chirp with the LED on,
// the LED held alone for 2.5s, then 2.5s all-off idle.
//
// Normal (temp < target): everything off for 1s.
func Decide(tempC, targetC float64) smartpan.ActuationOutput {
	switch {
	case tempC >= targetC+CriticalMarginC:
		return smartpan.ActuationOutput{
			Band: smartpan.BandCritical,
			Steps: []smartpan.Step{
				{LED: true, Buzzer: true, Hold: criticalHold},
			},
		}
	case tempC >= targetC:
		return smartpan.ActuationOutput{
			Band: smartpan.BandAlert,
			Steps: []smartpan.Step{
				{LED: true, Buzzer: true, Hold: chirpHold},
				{LED: true, Buzzer: false, Hold: alertLEDHold},
				{LED: false, Buzzer: false, Hold: alertIdleHold},
			},
		}
	default:
		return smartpan.ActuationOutput{
			Band: smartpan.BandNormal,
			Steps: []smartpan.Step{
				{LED: false, Buzzer: false, Hold: normalHold},
			},
		}
	}
}
