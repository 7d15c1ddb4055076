package rc

import (
	"errors"
	"sync"

	"github.com/riking/rcsim/rcpc"
)

type fakeJoystick struct {
	name    string
	axes    []float64
	buttons []int
	pumpErr error

	pumps  int
	closed bool
}

func (j *fakeJoystick) Name() string { return j.name }

func (j *fakeJoystick) Axis(i int) float64 {
	if i < 0 || i >= len(j.axes) {
		return 0
	}
	return j.axes[i]
}

func (j *fakeJoystick) Button(i int) int {
	if i < 0 || i >= len(j.buttons) {
		return 0
	}
	return j.buttons[i]
}

func (j *fakeJoystick) Pump() error {
	j.pumps++
	return j.pumpErr
}

func (j *fakeJoystick) Close() error {
	j.closed = true
	return nil
}

func openerFor(js rcpc.Joystick) Opener {
	return func() (rcpc.Joystick, error) { return js, nil }
}

func failingOpener() (rcpc.Joystick, error) {
	return nil, errors.New("no joystick")
}

type recordingOutput struct {
	mu     sync.Mutex
	frames []rcpc.Frame
	err    error
	closed bool
}

func (o *recordingOutput) Publish(f rcpc.Frame) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frames = append(o.frames, f)
	return o.err
}

func (o *recordingOutput) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	return nil
}

func (o *recordingOutput) Frames() []rcpc.Frame {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]rcpc.Frame(nil), o.frames...)
}
