// Package rc is the transmitter emulator: it decides at startup whether a
// supported physical transmitter is present, then produces one RC frame per
// tick either from that device or from a simulated transmitter whose arm and
// override switches are driven by control requests.
package rc

import (
	"fmt"

	"github.com/riking/rcsim/profile"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
)

type Mode int

const (
	ModeSynthetic Mode = iota
	ModePhysical
)

func (m Mode) String() string {
	if m == ModePhysical {
		return "physical"
	}
	return "synthetic"
}

// Opener acquires the physical input device.
type Opener func() (rcpc.Joystick, error)

// Resolution is the startup decision. It does not change afterwards.
type Resolution struct {
	Mode Mode
	// Joystick and Profile are set in physical mode only.
	Joystick rcpc.Joystick
	Profile  *profile.Profile
	// DeviceName is the reported name of the opened device, if any, even
	// when it turned out to be unsupported.
	DeviceName string
}

// Resolve opens the input device and binds it to the first profile in table
// whose keys match its name. Any failure falls back to synthetic mode.
func Resolve(open Opener, table profile.Table, log *rclog.Log) Resolution {
	if open == nil {
		log.Info("rc.Resolve", "No joystick configured, using simulated joystick")
		return Resolution{Mode: ModeSynthetic}
	}
	js, err := open()
	if err != nil {
		log.Info("rc.Resolve", fmt.Sprintf("No joystick (or display) detected, using simulated joystick (%v)", err))
		return Resolution{Mode: ModeSynthetic}
	}

	name := js.Name()
	log.Info("rc.Resolve", "Joystick: "+name)

	p := table.Match(name)
	if p == nil {
		log.Error("rc.Resolve", fmt.Sprintf("Unsupported joystick device %q, using simulated joystick", name))
		js.Close()
		return Resolution{Mode: ModeSynthetic, DeviceName: name}
	}
	log.Info("rc.Resolve", "Using controller profile "+p.Name)
	return Resolution{
		Mode:       ModePhysical,
		Joystick:   js,
		Profile:    p,
		DeviceName: name,
	}
}
