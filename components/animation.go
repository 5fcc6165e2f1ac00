package components

import (
	"math"

	"github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi"
)

// AnimationData plays one attack clip timeline and reports its authored
// events frame by frame.
type AnimationData struct {
	Clip    *config.AttackClip
	Elapsed float64
	Frame   int // last frame whose events fired, -1 before the first tick
	Playing bool

	generation int
}

// Play restarts the timeline with clip.
func (a *AnimationData) Play(clip *config.AttackClip) {
	a.Clip = clip
	a.Elapsed = 0
	a.Frame = -1
	a.Playing = clip != nil
	a.generation++
}

// Stop abandons the current clip without firing its remaining events.
func (a *AnimationData) Stop() {
	a.Clip = nil
	a.Playing = false
	a.generation++
}

// Advance moves the timeline forward by dt and calls fire for every event
// whose frame was reached, in authored order. If fire restarts or stops the
// clip, the remaining events of the old clip are skipped. It reports whether
// the clip ran to its last frame during this call.
func (a *AnimationData) Advance(dt float64, fire func(config.ClipEvent)) bool {
	if !a.Playing || a.Clip == nil {
		return false
	}
	gen := a.generation
	clip := a.Clip

	a.Elapsed += dt
	frame := int(math.Floor(a.Elapsed*clip.FPS + 1e-9))
	if frame >= clip.Frames {
		frame = clip.Frames - 1
	}

	for _, evt := range clip.Events {
		if evt.Frame <= a.Frame || evt.Frame > frame {
			continue
		}
		fire(evt)
		if a.generation != gen {
			return false
		}
	}
	a.Frame = frame

	if frame >= clip.Frames-1 {
		a.Playing = false
		return true
	}
	return false
}

var Animation = donburi.NewComponentType[AnimationData]()
