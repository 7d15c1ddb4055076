package rc

import (
	"sync"

	"github.com/riking/rcsim/rcpc"
)

// FallbackState is the persistent frame of the simulated transmitter. The
// control operations write single channels; the tick loop reads the whole
// frame.
type FallbackState struct {
	mu     sync.Mutex
	values [rcpc.NumChannels]int
}

var _ rcpc.Switches = &FallbackState{}

// NewFallbackState returns a disarmed transmitter at zero throttle with the
// override switch on and everything else centered.
func NewFallbackState() *FallbackState {
	s := &FallbackState{}
	for i := range s.values {
		s.values[i] = rcpc.ChannelMid
	}
	s.values[rcpc.ThrottleChannel] = rcpc.ChannelMin
	s.values[rcpc.ArmSwitchChannel] = rcpc.ChannelMin
	s.values[rcpc.OverrideChannel] = rcpc.ChannelMax
	return s
}

func (s *FallbackState) Values() [rcpc.NumChannels]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

func (s *FallbackState) set(c rcpc.Channel, v int) {
	s.mu.Lock()
	s.values[c] = v
	s.mu.Unlock()
}

func (s *FallbackState) Arm() rcpc.Result {
	s.set(rcpc.ArmSwitchChannel, rcpc.ChannelMax)
	return rcpc.Result{Success: true, Message: "Arm switch enabled!"}
}

func (s *FallbackState) Disarm() rcpc.Result {
	s.set(rcpc.ArmSwitchChannel, rcpc.ChannelMin)
	return rcpc.Result{Success: true, Message: "Arm switch disabled!"}
}

func (s *FallbackState) EnableOverride() rcpc.Result {
	s.set(rcpc.OverrideChannel, rcpc.ChannelMax)
	return rcpc.Result{Success: true, Message: "Override switch enabled!"}
}

func (s *FallbackState) DisableOverride() rcpc.Result {
	s.set(rcpc.OverrideChannel, rcpc.ChannelMin)
	return rcpc.Result{Success: true, Message: "Override switch disabled!"}
}
