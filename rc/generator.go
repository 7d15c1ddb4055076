package rc

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/riking/rcsim/profile"
	"github.com/riking/rcsim/rcpc"
)

// Generator produces the frame for one tick.
type Generator interface {
	Generate(now time.Time) (rcpc.Frame, error)
}

// ChannelValue converts a nominal [-1, 1] value to a pulse width, rounding
// halves to even.
func ChannelValue(v float64) int {
	if math.IsNaN(v) {
		return rcpc.ChannelMid
	}
	return int(math.RoundToEven(v*500 + 1500))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

type physicalGenerator struct {
	js      rcpc.Joystick
	profile *profile.Profile
	clamp   bool
}

// NewPhysical samples js through p on every tick. With clampOutput unset,
// mapper output outside [-1, 1] yields pulse widths outside [1000, 2000].
func NewPhysical(js rcpc.Joystick, p *profile.Profile, clampOutput bool) Generator {
	return &physicalGenerator{js: js, profile: p, clamp: clampOutput}
}

// Generate maps the device state even when the pump fails, so the frame
// carries the last known input; the error is returned alongside it.
func (g *physicalGenerator) Generate(now time.Time) (rcpc.Frame, error) {
	err := g.js.Pump()

	f := rcpc.Frame{Stamp: now}
	for _, c := range rcpc.ChannelList {
		v := g.profile.Read(g.js, c)
		if g.clamp {
			v = clamp(v)
		}
		f.Values[c] = ChannelValue(v)
	}
	return f, errors.Wrap(err, "pumping joystick")
}

type syntheticGenerator struct {
	state *FallbackState
}

func NewSynthetic(state *FallbackState) Generator {
	return &syntheticGenerator{state: state}
}

func (g *syntheticGenerator) Generate(now time.Time) (rcpc.Frame, error) {
	return rcpc.Frame{Stamp: now, Values: g.state.Values()}, nil
}
