package msp

import (
	"strings"

	"github.com/pkg/errors"
)

// ChannelMap orders the four stick channels the way the flight controller
// expects them. Entry i is the index, in AIL ELV THR RUD order, of the
// channel sent in slot i.
type ChannelMap [4]int

// AETR is the identity map.
var AETR = ChannelMap{0, 1, 2, 3}

// ParseChannelMap parses a map written as letters, e.g. "TAER".
func ParseChannelMap(s string) (ChannelMap, error) {
	var m ChannelMap
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 4 {
		return m, errors.Errorf("channel map %q must have 4 letters", s)
	}
	var seen [4]bool
	for i, r := range s {
		idx := strings.IndexRune("AETR", r)
		if idx < 0 || seen[idx] {
			return m, errors.Errorf("channel map %q must use each of A, E, T, R once", s)
		}
		seen[idx] = true
		m[i] = idx
	}
	return m, nil
}

// Apply reorders the stick channels of values; the rest keep their place.
func (m ChannelMap) Apply(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	if len(values) < 4 {
		return out
	}
	for slot, src := range m {
		out[slot] = values[src]
	}
	return out
}

func (m ChannelMap) String() string {
	var b strings.Builder
	for _, src := range m {
		b.WriteByte("AETR"[src])
	}
	return b.String()
}
