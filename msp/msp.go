// Package msp encodes MultiWii Serial Protocol v1 frames, enough to feed RC
// channels to a flight controller.
package msp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	MspAPIVersion = 1
	MspRXMap      = 64
	MspSetRawRC   = 200
)

// Frame is a decoded MSP v1 frame.
type Frame struct {
	Code      uint8
	Direction byte // '<' to the FC, '>' from it, '!' error
	Payload   []byte
}

// IsError reports whether the flight controller rejected the command.
func (f *Frame) IsError() bool {
	return f.Direction == '!'
}

// Encode builds a request frame ($M<) for cmd.
func Encode(cmd uint8, data []byte) ([]byte, error) {
	if len(data) > 255 {
		return nil, errors.Errorf("msp: payload of %d bytes too long for v1", len(data))
	}
	var buf bytes.Buffer
	buf.WriteString("$M<")
	buf.WriteByte(byte(len(data)))
	buf.WriteByte(cmd)
	buf.Write(data)
	buf.WriteByte(checksum(buf.Bytes()[3:]))
	return buf.Bytes(), nil
}

// xor of size, command and payload
func checksum(p []byte) byte {
	crc := byte(0)
	for _, v := range p {
		crc ^= v
	}
	return crc
}

// RawRC encodes channel values as MSP_SET_RAW_RC expects them: little-endian
// uint16 pulse widths. Values outside the uint16 range are saturated.
func RawRC(values []int) []byte {
	p := make([]byte, 2*len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		} else if v > 0xFFFF {
			v = 0xFFFF
		}
		binary.LittleEndian.PutUint16(p[2*i:], uint16(v))
	}
	return p
}

// ErrMalformed is the cause of every error ReadFrame returns for a corrupt
// frame. The stream stays usable; the next call resyncs on '$M'.
var ErrMalformed = errors.New("msp: malformed frame")

// Reader decodes frames from a byte stream, skipping noise between them.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (m *Reader) ReadFrame() (*Frame, error) {
	var prev byte
	for {
		b, err := m.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if prev == '$' && b == 'M' {
			break
		}
		prev = b
	}

	var hdr [3]byte
	if _, err := io.ReadFull(m.r, hdr[:]); err != nil {
		return nil, err
	}
	dir, size, code := hdr[0], hdr[1], hdr[2]
	if dir != '<' && dir != '>' && dir != '!' {
		return nil, errors.Wrapf(ErrMalformed, "invalid direction char 0x%02x", dir)
	}
	body := make([]byte, int(size)+1)
	if _, err := io.ReadFull(m.r, body); err != nil {
		return nil, err
	}
	payload := body[:size]
	want := checksum(append([]byte{size, code}, payload...))
	if got := body[size]; got != want {
		return nil, errors.Wrapf(ErrMalformed, "bad checksum 0x%02x for command %d, want 0x%02x", got, code, want)
	}
	return &Frame{Code: code, Direction: dir, Payload: payload}, nil
}
