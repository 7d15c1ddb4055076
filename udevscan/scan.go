// Package udevscan finds joystick device nodes through udev.
package udevscan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned by List on builds without udev.
var ErrUnsupported = errors.New("udev scanning not supported on this build")

type Device struct {
	Node string // e.g. /dev/input/js0
	Name string // as reported by the kernel input layer
}

func (d Device) String() string {
	if d.Name == "" {
		return d.Node
	}
	return fmt.Sprintf("%s: %s", d.Node, d.Name)
}

// isJoystickNode reports whether node names a jsN device.
func isJoystickNode(node string) bool {
	base := filepath.Base(node)
	if !strings.HasPrefix(base, "js") {
		return false
	}
	_, err := strconv.Atoi(base[2:])
	return err == nil
}

// First returns the node of the first device, or fallback.
func First(devs []Device, fallback string) string {
	if len(devs) == 0 {
		return fallback
	}
	return devs[0].Node
}

// Names formats devs for display.
func Names(devs []Device) []string {
	out := make([]string, len(devs))
	for i, d := range devs {
		out[i] = d.String()
	}
	return out
}
