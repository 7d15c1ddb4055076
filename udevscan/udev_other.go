//go:build !linux || !cgo
// +build !linux !cgo

package udevscan

func List() ([]Device, error) {
	return nil, ErrUnsupported
}
