package profile

import (
	"testing"

	"github.com/riking/rcsim/rcpc"
)

type fakeState struct {
	axes    []float64
	buttons []int
}

func (f *fakeState) Axis(i int) float64 {
	if i < 0 || i >= len(f.axes) {
		return 0
	}
	return f.axes[i]
}

func (f *fakeState) Button(i int) int {
	if i < 0 || i >= len(f.buttons) {
		return 0
	}
	return f.buttons[i]
}

func TestDefaultTableComplete(t *testing.T) {
	if err := Default.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, p := range Default {
		for _, c := range rcpc.ChannelList {
			if !p.Channels[c].IsSet() {
				t.Errorf("%s: channel %s unmapped", p.Name, c)
			}
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		device string
		want   string
	}{
		{"OpenTX RM TX16S Joystick", "TX16S"},
		{"FrSky Taranis Joystick", "Taranis"},
		{"Microsoft X-Box 360 pad", "XBox"},
		{"Xbox Wireless Controller", "XBox"},
		{"GREAT PLANES InterLink Elite", "RealFlight"},
		{"OpenTX Radiomaster Boxer Joystick", "Boxer"},
		{"Generic USB Gamepad", ""},
		{"opentx rm tx16s joystick", ""},
		{"", ""},
	}
	for _, tt := range tests {
		p := Default.Match(tt.device)
		got := ""
		if p != nil {
			got = p.Name
		}
		if got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.device, got, tt.want)
		}
	}
}

func TestMatchFirstWins(t *testing.T) {
	a := &Profile{Name: "A", Keys: []string{"Radio"}}
	b := &Profile{Name: "B", Keys: []string{"Radio X"}}
	if p := (Table{a, b}).Match("Radio X"); p != a {
		t.Errorf("got %v, want A", p)
	}
	if p := (Table{b, a}).Match("Radio X"); p != b {
		t.Errorf("got %v, want B", p)
	}
}

func TestRealFlightMapping(t *testing.T) {
	st := &fakeState{
		axes:    []float64{0.25, -0.5, 0.75, 0, 1},
		buttons: []int{1, 0, 1, 0, 1},
	}
	want := [rcpc.NumChannels]float64{0.25, -0.5, -0.75, 1, 1, 1, -1, 1}
	for _, c := range rcpc.ChannelList {
		if got := RealFlight.Read(st, c); got != want[c] {
			t.Errorf("RealFlight %s = %v, want %v", c, got, want[c])
		}
	}
}

func TestXBoxMapping(t *testing.T) {
	st := &fakeState{
		axes:    []float64{0.1, 0.2, 0.3, 0.4, 0.5},
		buttons: []int{0, 1, 0, 1},
	}
	want := [rcpc.NumChannels]float64{0.4, 0.5, -0.2, 0.1, 0, 1, 0, 1}
	for _, c := range rcpc.ChannelList {
		if got := XBox.Read(st, c); got != want[c] {
			t.Errorf("XBox %s = %v, want %v", c, got, want[c])
		}
	}
}

func TestValidate(t *testing.T) {
	p := &Profile{Name: "partial", Keys: []string{"partial"}}
	for i := 0; i < rcpc.NumChannels-1; i++ {
		p.Channels[i] = Axis(i)
	}
	if err := p.Validate(); err == nil {
		t.Error("profile missing SW4 validated")
	}
	p.Channels[rcpc.ChannelSW4] = Const(0)
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
	if err := (Table{p, p}).Validate(); err == nil {
		t.Error("duplicate profile validated")
	}
	if err := (&Profile{Name: "nokeys", Channels: p.Channels}).Validate(); err == nil {
		t.Error("profile without keys validated")
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"axis3", Axis(3)},
		{"-axis1", InvertedAxis(1)},
		{" button0 ", Button(0)},
		{"switch4", Switch(4)},
		{"0", Const(0)},
		{"-0.5", Const(-0.5)},
	}
	for _, tt := range tests {
		got, err := ParseSource(tt.in)
		if err != nil {
			t.Errorf("ParseSource(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSource(%q) = %v, want %v", tt.in, got, tt.want)
		}
		again, err := ParseSource(got.String())
		if err != nil || again != got {
			t.Errorf("ParseSource(%q.String()) = %v, %v", tt.in, again, err)
		}
	}

	for _, bad := range []string{"", "axis", "axis-1", "knob2", "buttonx"} {
		if _, err := ParseSource(bad); err == nil {
			t.Errorf("ParseSource(%q) succeeded", bad)
		}
	}
}

func TestInvertedSwitch(t *testing.T) {
	s, err := ParseSource("-switch2")
	if err != nil {
		t.Fatal(err)
	}
	st := &fakeState{buttons: []int{0, 0, 1}}
	if got := s.Read(st); got != -1 {
		t.Errorf("pressed inverted switch = %v, want -1", got)
	}
	st.buttons[2] = 0
	if got := s.Read(st); got != 1 {
		t.Errorf("released inverted switch = %v, want 1", got)
	}
}
