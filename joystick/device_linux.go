//go:build linux
// +build linux

package joystick

import (
	"bytes"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/riking/rcsim/rcpc"
	"golang.org/x/sys/unix"
)

const (
	jsiocgaxes    = 0x80016a11
	jsiocgbuttons = 0x80016a12
)

func jsiocgname(size int) uintptr {
	return 0x80006a13 | uintptr(size)<<16
}

type device struct {
	*State

	path string
	name string

	mu  sync.Mutex
	fd  int
	buf [eventSize * 64]byte
}

// Open opens a joystick device node and reads its initial state.
func Open(path string) (rcpc.Joystick, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err == unix.ENOENT || err == unix.ENODEV || err == unix.ENXIO {
		return nil, errors.Wrap(ErrNoDevice, path)
	} else if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	var nameBuf [128]byte
	if err := ioctl(fd, jsiocgname(len(nameBuf)), unsafe.Pointer(&nameBuf[0])); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "%s: reading device name", path)
	}
	var axes, buttons uint8
	if err := ioctl(fd, jsiocgaxes, unsafe.Pointer(&axes)); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "%s: reading axis count", path)
	}
	if err := ioctl(fd, jsiocgbuttons, unsafe.Pointer(&buttons)); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "%s: reading button count", path)
	}

	d := &device{
		State: NewState(int(axes), int(buttons)),
		path:  path,
		name:  cString(nameBuf[:]),
		fd:    fd,
	}
	// the driver queues one init event per control
	if err := d.Pump(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func cString(p []byte) string {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return string(p)
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *device) Name() string {
	return d.name
}

// Pump drains the events queued by the driver. It never blocks.
func (d *device) Pump() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fd < 0 {
		return errors.Wrap(ErrNoDevice, d.path)
	}
	for {
		n, err := unix.Read(d.fd, d.buf[:])
		if err == unix.EAGAIN || err == unix.EINTR {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "reading %s", d.path)
		}
		if n == 0 {
			return errors.Wrap(ErrNoDevice, d.path)
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			ev, _ := DecodeEvent(d.buf[off : off+eventSize])
			d.State.Apply(ev)
		}
		if n < len(d.buf) {
			return nil
		}
	}
}

func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
