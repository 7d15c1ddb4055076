// Package hidscan lists attached HID devices, to help identify a
// transmitter when writing a new controller profile.
package hidscan

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrUnsupported = errors.New("HID enumeration not supported on this build")

type Device struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Path         string
}

func (d Device) String() string {
	name := d.Product
	if d.Manufacturer != "" {
		name = d.Manufacturer + " " + d.Product
	}
	return fmt.Sprintf("%04x:%04x %s (%s)", d.VendorID, d.ProductID, name, d.Path)
}

// Names formats devs for display.
func Names(devs []Device) []string {
	out := make([]string, len(devs))
	for i, d := range devs {
		out[i] = d.String()
	}
	return out
}
