//go:build linux && cgo
// +build linux,cgo

package udevscan

import (
	"sort"

	"github.com/jkeiser/iter"
	"github.com/jochenvg/go-udev"
	"github.com/pkg/errors"
)

// List enumerates the joystick nodes currently known to udev, in node order.
func List() ([]Device, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("input"); err != nil {
		return nil, errors.Wrap(err, "udev enumerate")
	}
	if err := e.AddMatchSysname("js*"); err != nil {
		return nil, errors.Wrap(err, "udev enumerate")
	}
	if err := e.AddMatchIsInitialized(); err != nil {
		return nil, errors.Wrap(err, "udev enumerate")
	}

	it, err := e.DeviceIterator()
	if err != nil {
		return nil, errors.Wrap(err, "udev scan")
	}

	var devs []Device
	err = it.Select(func(v interface{}) bool {
		d, ok := v.(*udev.Device)
		return ok && isJoystickNode(d.Devnode())
	}).Each(func(v interface{}) {
		devs = append(devs, describe(v.(*udev.Device)))
	})
	if err != nil && err != iter.FINISHED {
		return nil, errors.Wrap(err, "udev scan")
	}
	sort.Slice(devs, func(i, j int) bool { return devs[i].Node < devs[j].Node })
	return devs, nil
}

func describe(d *udev.Device) Device {
	dev := Device{Node: d.Devnode()}
	if p := d.Parent(); p != nil {
		dev.Name = p.SysattrValue("name")
	}
	return dev
}
