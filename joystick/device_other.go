//go:build !linux
// +build !linux

package joystick

import (
	"github.com/pkg/errors"
	"github.com/riking/rcsim/rcpc"
)

func Open(path string) (rcpc.Joystick, error) {
	return nil, errors.Wrap(ErrUnsupported, path)
}
