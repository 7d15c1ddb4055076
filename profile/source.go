package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/riking/rcsim/rcpc"
)

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceConst
	sourceAxis
	sourceButton
)

// Source maps one raw input of a joystick onto a channel value nominally in
// [-1, 1], as Scale*raw + Offset. The zero Source is unset.
type Source struct {
	kind   sourceKind
	Index  int
	Scale  float64
	Offset float64
}

func Axis(i int) Source         { return Source{kind: sourceAxis, Index: i, Scale: 1} }
func InvertedAxis(i int) Source { return Source{kind: sourceAxis, Index: i, Scale: -1} }
func Button(i int) Source       { return Source{kind: sourceButton, Index: i, Scale: 1} }

// Switch maps a button onto the full range: released -1, pressed +1.
func Switch(i int) Source { return Source{kind: sourceButton, Index: i, Scale: 2, Offset: -1} }

func Const(v float64) Source { return Source{kind: sourceConst, Offset: v} }

// IsSet reports whether the source was built by one of the constructors.
func (s Source) IsSet() bool {
	return s.kind != sourceNone
}

func (s Source) Read(j rcpc.RawState) float64 {
	switch s.kind {
	case sourceAxis:
		return s.Scale*j.Axis(s.Index) + s.Offset
	case sourceButton:
		return s.Scale*float64(j.Button(s.Index)) + s.Offset
	case sourceConst:
		return s.Offset
	}
	return 0
}

func (s Source) String() string {
	switch s.kind {
	case sourceConst:
		return strconv.FormatFloat(s.Offset, 'g', -1, 64)
	case sourceAxis:
		switch {
		case s.Scale == 1 && s.Offset == 0:
			return fmt.Sprintf("axis%d", s.Index)
		case s.Scale == -1 && s.Offset == 0:
			return fmt.Sprintf("-axis%d", s.Index)
		}
	case sourceButton:
		switch {
		case s.Scale == 1 && s.Offset == 0:
			return fmt.Sprintf("button%d", s.Index)
		case s.Scale == -1 && s.Offset == 0:
			return fmt.Sprintf("-button%d", s.Index)
		case s.Scale == 2 && s.Offset == -1:
			return fmt.Sprintf("switch%d", s.Index)
		case s.Scale == -2 && s.Offset == 1:
			return fmt.Sprintf("-switch%d", s.Index)
		}
	default:
		return "unset"
	}
	return fmt.Sprintf("%g*%s%d%+g", s.Scale, s.kindName(), s.Index, s.Offset)
}

func (s Source) kindName() string {
	if s.kind == sourceAxis {
		return "axis"
	}
	return "button"
}

var sourceConstructors = []struct {
	prefix string
	f      func(int) Source
}{
	{"axis", Axis},
	{"button", Button},
	{"switch", Switch},
}

// ParseSource parses the textual form of a source: a number for a constant,
// or axisN, buttonN, switchN, each optionally prefixed with '-' to invert.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Const(v), nil
	}
	body := strings.TrimPrefix(s, "-")
	neg := len(body) != len(s)
	for _, c := range sourceConstructors {
		if !strings.HasPrefix(body, c.prefix) {
			continue
		}
		n, err := strconv.Atoi(body[len(c.prefix):])
		if err != nil || n < 0 {
			return Source{}, errors.Errorf("invalid %s index in channel source %q", c.prefix, s)
		}
		src := c.f(n)
		if neg {
			src.Scale = -src.Scale
			src.Offset = -src.Offset
		}
		return src, nil
	}
	return Source{}, errors.Errorf("invalid channel source %q", s)
}
