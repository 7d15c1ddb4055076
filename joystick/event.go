// Package joystick reads joysticks and USB transmitters through the Linux
// joystick API (/dev/input/jsN).
package joystick

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrNoDevice    = errors.New("no joystick device")
	ErrUnsupported = errors.New("joystick input is not supported on this platform")
)

// Event types, from linux/joystick.h.
const (
	eventButton = 0x01
	eventAxis   = 0x02
	// set on the synthetic events describing the initial state
	eventInit = 0x80
)

const eventSize = 8

// Event is one struct js_event.
type Event struct {
	Time   uint32 // milliseconds, device clock
	Value  int16
	Type   uint8
	Number uint8
}

func DecodeEvent(p []byte) (Event, error) {
	if len(p) < eventSize {
		return Event{}, errors.Errorf("short joystick event: %d bytes", len(p))
	}
	return Event{
		Time:   binary.LittleEndian.Uint32(p[0:]),
		Value:  int16(binary.LittleEndian.Uint16(p[4:])),
		Type:   p[6],
		Number: p[7],
	}, nil
}

func (e Event) IsAxis() bool   { return e.Type&^eventInit == eventAxis }
func (e Event) IsButton() bool { return e.Type&^eventInit == eventButton }

// State is the last reported value of every axis and button. It is not safe
// for concurrent use.
type State struct {
	axes    []int16
	buttons []bool
}

func NewState(axes, buttons int) *State {
	return &State{
		axes:    make([]int16, axes),
		buttons: make([]bool, buttons),
	}
}

// Apply records e. Events for controls the device did not report are
// dropped.
func (s *State) Apply(e Event) {
	i := int(e.Number)
	switch {
	case e.IsAxis():
		if i < len(s.axes) {
			s.axes[i] = e.Value
		}
	case e.IsButton():
		if i < len(s.buttons) {
			s.buttons[i] = e.Value != 0
		}
	}
}

func (s *State) NumAxes() int    { return len(s.axes) }
func (s *State) NumButtons() int { return len(s.buttons) }

// Axis returns axis i in [-1, 1].
func (s *State) Axis(i int) float64 {
	if i < 0 || i >= len(s.axes) {
		return 0
	}
	return normalizeAxis(s.axes[i])
}

func (s *State) Button(i int) int {
	if i < 0 || i >= len(s.buttons) || !s.buttons[i] {
		return 0
	}
	return 1
}

func normalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1 {
		v = -1
	}
	return v
}
