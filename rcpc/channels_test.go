package rcpc

import "testing"

func TestChannelOrder(t *testing.T) {
	want := []string{"AIL", "ELV", "THR", "RUD", "SW1", "SW2", "SW3", "SW4"}
	if len(ChannelList) != NumChannels {
		t.Fatalf("len(ChannelList) = %d, want %d", len(ChannelList), NumChannels)
	}
	for i, c := range ChannelList {
		if int(c) != i {
			t.Errorf("ChannelList[%d] = %d", i, c)
		}
		if c.String() != want[i] {
			t.Errorf("channel %d name = %q, want %q", i, c.String(), want[i])
		}
		got, ok := ChannelByName(want[i])
		if !ok || got != c {
			t.Errorf("ChannelByName(%q) = %v, %v", want[i], got, ok)
		}
	}
	if _, ok := ChannelByName("AUX9"); ok {
		t.Error("ChannelByName accepted unknown name")
	}
}

func TestSentinelChannels(t *testing.T) {
	if ThrottleChannel != 2 || ArmSwitchChannel != 4 || OverrideChannel != 5 {
		t.Errorf("sentinels = %d/%d/%d, want 2/4/5", ThrottleChannel, ArmSwitchChannel, OverrideChannel)
	}
}
