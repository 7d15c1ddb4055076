package profile

import "github.com/riking/rcsim/rcpc"

// Channel order: AIL, ELV, THR, RUD, SW1, SW2, SW3, SW4.

var Taranis = &Profile{
	Name: "Taranis",
	Keys: []string{"Taranis"},
	Channels: [rcpc.NumChannels]Source{
		Axis(0), Axis(1), Axis(2), Axis(3),
		Axis(4), Axis(5), Axis(6), Const(0),
	},
}

var XBox = &Profile{
	Name: "XBox",
	Keys: []string{"Xbox", "X-Box"},
	Channels: [rcpc.NumChannels]Source{
		Axis(3), Axis(4), InvertedAxis(1), Axis(0),
		Button(0), Button(1), Button(2), Button(3),
	},
}

// RealFlight InterLink.
var RealFlight = &Profile{
	Name: "RealFlight",
	Keys: []string{"GREAT PLANES"},
	Channels: [rcpc.NumChannels]Source{
		Axis(0), Axis(1), InvertedAxis(2), Axis(4),
		Switch(4), Switch(0), Switch(1), Switch(2),
	},
}

// RadioMaster TX16S over USB.
var TX16S = &Profile{
	Name: "TX16S",
	Keys: []string{"OpenTX RM TX16S Joystick"},
	Channels: [rcpc.NumChannels]Source{
		Axis(0), Axis(1), Axis(2), Axis(3),
		Axis(4), Axis(5), Axis(6), Const(0),
	},
}

var Boxer = &Profile{
	Name: "Boxer",
	Keys: []string{"OpenTX Radiomaster Boxer Joystick"},
	Channels: [rcpc.NumChannels]Source{
		Axis(0), Axis(1), Axis(2), Axis(3),
		Axis(4), Axis(5), Axis(6), Const(0),
	},
}

// Default is the built-in table.
var Default = Table{
	Taranis,
	XBox,
	RealFlight,
	TX16S,
	Boxer,
}
