//go:build !cgo
// +build !cgo

package hidscan

func List() ([]Device, error) {
	return nil, ErrUnsupported
}
