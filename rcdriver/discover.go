package main

import (
	"github.com/riking/rcsim/hidscan"
	"github.com/riking/rcsim/udevscan"
)

const fallbackDevice = "/dev/input/js0"

// defaultDevice picks the first joystick udev knows about.
func defaultDevice() string {
	devs, err := udevscan.List()
	if err != nil {
		return fallbackDevice
	}
	return udevscan.First(devs, fallbackDevice)
}

// listDevices reports joystick nodes, then raw HID devices.
func listDevices() ([]string, error) {
	devs, err := udevscan.List()
	if err != nil && err != udevscan.ErrUnsupported {
		return nil, err
	}
	names := udevscan.Names(devs)

	hids, err := hidscan.List()
	if err == hidscan.ErrUnsupported {
		return names, nil
	} else if err != nil {
		return nil, err
	}
	for _, n := range hidscan.Names(hids) {
		names = append(names, "hid "+n)
	}
	return names, nil
}
