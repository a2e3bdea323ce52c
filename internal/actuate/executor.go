package actuate

import (
	"context"
	"time"

	"smartpan"
	"smartpan/internal/hardware"
)

const selfTestHold = 250 * time.Millisecond

// Executor plays actuation patterns against the two physical outputs.
// Holds occupy the calling tick on purpose: actuation timing dominates loop
// latency and there is no competing work. Sleeps respect context cancellation
// so shutdown is not held hostage by a 2.5s hold.
type Executor struct {
	led    hardware.Actuator
	buzzer hardware.Actuator
	sleep  func(ctx context.Context, d time.Duration)
}

func NewExecutor(led, buzzer hardware.Actuator) *Executor {
	return &Executor{led: led, buzzer: buzzer, sleep: sleepCtx}
}

// Apply drives the outputs through each step in order, holding between
// transitions. Outputs are left in the final step's state.
func (e *Executor) Apply(ctx context.Context, out smartpan.ActuationOutput) {
	for _, st := range out.Steps {
		e.led.Set(st.LED)
		e.buzzer.Set(st.Buzzer)
		e.sleep(ctx, st.Hold)
		if ctx.Err() != nil {
			return
		}
	}
}

// SelfTest runs the one-shot boot diagnostic: LED blink, then buzzer blip.
func (e *Executor) SelfTest(ctx context.Context) {
	e.led.Set(true)
	e.sleep(ctx, selfTestHold)
	e.led.Set(false)
	e.buzzer.Set(true)
	e.sleep(ctx, selfTestHold)
	e.buzzer.Set(false)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
