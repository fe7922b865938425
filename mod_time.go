package lumen

import (
	"time"
)

type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64

	// FrameRate is frames per second, smoothed over recent frames.
	FrameRate float64

	step time.Duration
}

func (t *Time) DeltaSeconds() float32 { return float32(t.Dt.Seconds()) }

// TimeModule advances a Time resource once per frame. A non-zero Step replaces the wall
// clock with a fixed delta, for headless and repeatable runs.
type TimeModule struct {
	Step time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{Time: time.Now(), step: mod.Step})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

const frameRateSmoothing = 0.1

func timeSystem(t *Time) {
	now := time.Now()
	if t.step > 0 {
		now = t.Time.Add(t.step)
	}

	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed += t.Dt
	t.Frame++

	if t.Dt <= 0 {
		return
	}
	rate := 1 / t.Dt.Seconds()
	if t.FrameRate == 0 {
		t.FrameRate = rate
	} else {
		t.FrameRate += (rate - t.FrameRate) * frameRateSmoothing
	}
}

// FrameLimitModule exits after a fixed number of frames.
type FrameLimitModule struct {
	Frames uint64
}

func (mod FrameLimitModule) Install(app *App, cmd *Commands) {
	if mod.Frames == 0 {
		return
	}
	app.UseSystem(System(func(t *Time, cmd *Commands) {
		if t.Frame >= mod.Frames {
			cmd.Exit()
		}
	}).InStage(Finale))
}
