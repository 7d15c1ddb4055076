package rcpc

// Pulse widths in microseconds, standard RC convention.
const (
	ChannelMin = 1000
	ChannelMid = 1500
	ChannelMax = 2000
)

// Channels driven by the simulated transmitter.
const (
	ThrottleChannel  = ChannelTHR
	ArmSwitchChannel = ChannelSW1
	OverrideChannel  = ChannelSW2
)

// DefaultRate is the frame rate in Hz.
const DefaultRate = 50
