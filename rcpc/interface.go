package rcpc

import "time"

// Frame is one RC message. Values is indexed by Channel.
type Frame struct {
	Stamp  time.Time        `json:"stamp"`
	Values [NumChannels]int `json:"values"`
}

// RawState is a snapshot of a joystick's inputs, in the form the controller
// profiles consume.
type RawState interface {
	// Axis returns the normalized position of axis i in [-1, 1], or 0 if the
	// device has no such axis.
	Axis(i int) float64
	// Button returns 1 if button i is pressed, else 0.
	Button(i int) int
}

// Joystick is a physical input device opened at startup.
type Joystick interface {
	RawState
	Name() string
	// Pump refreshes the raw state from the device's pending input. It must
	// not block.
	Pump() error
	Close() error
}

// Output is a sink for emitted frames. Publish is called once per tick from
// the tick loop.
type Output interface {
	Publish(f Frame) error
	Close() error
}

// Result is the response of a trigger-style control operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Switches is the control surface of the simulated transmitter.
type Switches interface {
	Arm() Result
	Disarm() Result
	EnableOverride() Result
	DisableOverride() Result
}

// Status is a point-in-time description of a running node.
type Status struct {
	Mode       string `json:"mode"`
	DeviceName string `json:"device,omitempty"`
	Profile    string `json:"profile,omitempty"`
	Frame      Frame  `json:"frame"`
}
