package rc

import (
	"sync"
	"testing"

	"github.com/riking/rcsim/rcpc"
)

func TestFallbackInitial(t *testing.T) {
	want := [rcpc.NumChannels]int{1500, 1500, 1000, 1500, 1000, 2000, 1500, 1500}
	if got := NewFallbackState().Values(); got != want {
		t.Errorf("initial frame = %v, want %v", got, want)
	}
}

func TestFallbackSwitches(t *testing.T) {
	s := NewFallbackState()
	steps := []struct {
		op      func() rcpc.Result
		channel rcpc.Channel
		want    int
		msg     string
	}{
		{s.Arm, rcpc.ArmSwitchChannel, 2000, "Arm switch enabled!"},
		{s.Arm, rcpc.ArmSwitchChannel, 2000, "Arm switch enabled!"},
		{s.Disarm, rcpc.ArmSwitchChannel, 1000, "Arm switch disabled!"},
		{s.Disarm, rcpc.ArmSwitchChannel, 1000, "Arm switch disabled!"},
		{s.DisableOverride, rcpc.OverrideChannel, 1000, "Override switch disabled!"},
		{s.EnableOverride, rcpc.OverrideChannel, 2000, "Override switch enabled!"},
	}
	for i, st := range steps {
		res := st.op()
		if !res.Success || res.Message != st.msg {
			t.Errorf("step %d: result %+v, want success %q", i, res, st.msg)
		}
		v := s.Values()
		if v[st.channel] != st.want {
			t.Errorf("step %d: %s = %d, want %d", i, st.channel, v[st.channel], st.want)
		}
		// nothing else moves
		for _, c := range []rcpc.Channel{rcpc.ChannelAIL, rcpc.ChannelELV, rcpc.ChannelRUD, rcpc.ChannelSW3, rcpc.ChannelSW4} {
			if v[c] != rcpc.ChannelMid {
				t.Errorf("step %d: %s = %d, want %d", i, c, v[c], rcpc.ChannelMid)
			}
		}
		if v[rcpc.ThrottleChannel] != rcpc.ChannelMin {
			t.Errorf("step %d: throttle = %d", i, v[rcpc.ThrottleChannel])
		}
	}
}

func TestFallbackConcurrentOverride(t *testing.T) {
	s := NewFallbackState()
	var wg sync.WaitGroup
	stop := make(chan struct{})
	bad := make(chan int, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			v := s.Values()[rcpc.OverrideChannel]
			if v != rcpc.ChannelMin && v != rcpc.ChannelMax {
				select {
				case bad <- v:
				default:
				}
			}
		}
	}()

	var writers sync.WaitGroup
	for i := 0; i < 4; i++ {
		writers.Add(1)
		go func(i int) {
			defer writers.Done()
			for j := 0; j < 1000; j++ {
				if (i+j)%2 == 0 {
					s.EnableOverride()
				} else {
					s.DisableOverride()
				}
			}
		}(i)
	}
	writers.Wait()
	close(stop)
	wg.Wait()

	select {
	case v := <-bad:
		t.Fatalf("override channel read %d", v)
	default:
	}
	v := s.Values()[rcpc.OverrideChannel]
	if v != rcpc.ChannelMin && v != rcpc.ChannelMax {
		t.Errorf("final override = %d", v)
	}
}
