package msp

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestEncode(t *testing.T) {
	got, err := Encode(MspAPIVersion, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'$', 'M', '<', 0, 1, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(API_VERSION) = %v, want %v", got, want)
	}

	if _, err := Encode(MspSetRawRC, make([]byte, 256)); err == nil {
		t.Error("oversized payload accepted")
	}
}

func TestRawRC(t *testing.T) {
	got := RawRC([]int{1000, 2000, -5, 70000})
	want := []byte{0xE8, 0x03, 0xD0, 0x07, 0, 0, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("RawRC = %v, want %v", got, want)
	}
}

func TestReadFrameRoundTrip(t *testing.T) {
	payload := RawRC([]int{1500, 1500, 1000, 1500, 1000, 2000, 1500, 1500})
	enc, err := Encode(MspSetRawRC, payload)
	if err != nil {
		t.Fatal(err)
	}
	stream := append([]byte("noise$"), enc...)
	r := NewReader(bytes.NewReader(stream))
	f, err := r.ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	if f.Code != MspSetRawRC || f.Direction != '<' || !bytes.Equal(f.Payload, payload) {
		t.Errorf("decoded %+v", f)
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Errorf("second ReadFrame err = %v, want EOF", err)
	}
}

func TestReadFrameBadChecksum(t *testing.T) {
	enc, _ := Encode(MspRXMap, []byte{1, 2, 3})
	enc[len(enc)-1] ^= 0xFF
	good, _ := Encode(MspAPIVersion, nil)
	r := NewReader(bytes.NewReader(append(enc, good...)))
	if _, err := r.ReadFrame(); errors.Cause(err) != ErrMalformed {
		t.Errorf("corrupt frame: err = %v, want ErrMalformed", err)
	}
	fr, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("frame after corrupt one: %v", err)
	}
	if fr.Code != MspAPIVersion {
		t.Errorf("code = %d, want %d", fr.Code, MspAPIVersion)
	}
}

func TestChannelMap(t *testing.T) {
	m, err := ParseChannelMap("taer")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "TAER" {
		t.Errorf("String = %q", m.String())
	}
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := m.Apply(in)
	want := []int{3, 1, 2, 4, 5, 6, 7, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Apply = %v, want %v", got, want)
		}
	}
	if in[0] != 1 {
		t.Error("Apply modified its input")
	}
	if got := AETR.Apply(in); got[2] != 3 {
		t.Errorf("identity map moved channels: %v", got)
	}

	for _, bad := range []string{"", "AET", "AETT", "AETX", "AETRR"} {
		if _, err := ParseChannelMap(bad); err == nil {
			t.Errorf("ParseChannelMap(%q) succeeded", bad)
		}
	}
}
