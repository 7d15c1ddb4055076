//go:build cgo
// +build cgo

package hidscan

import (
	"github.com/GeertJohan/go.hid"
	"github.com/pkg/errors"
)

// List enumerates every HID device on the system.
func List() ([]Device, error) {
	deviceList, err := hid.Enumerate(0, 0)
	if err != nil {
		return nil, errors.Wrap(err, "HID enumeration")
	}
	devs := make([]Device, 0, len(deviceList))
	for _, dev := range deviceList {
		devs = append(devs, Device{
			VendorID:     dev.VendorId,
			ProductID:    dev.ProductId,
			Manufacturer: dev.Manufacturer,
			Product:      dev.Product,
			Path:         dev.Path,
		})
	}
	return devs, nil
}
