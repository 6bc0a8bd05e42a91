package starfield

import (
	"time"
)

type Time struct {
	Time   time.Time
	Dt     time.Duration
	Paused bool
}

// DeltaSeconds is the frame delta fed to the animation, zero while paused.
func (t *Time) DeltaSeconds() float32 {
	if t.Paused || t.Dt <= 0 {
		return 0
	}
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude).RunAlways())
}

func timeSystem(timeResource *Time) {
	timeResource.advance(time.Now())
}

func (t *Time) advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = now
}
