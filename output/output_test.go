package output

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riking/rcsim/msp"
	"github.com/riking/rcsim/rcpc"
)

func TestConsolePrintsChanges(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	f := rcpc.Frame{Stamp: time.Now(), Values: [rcpc.NumChannels]int{1500, 1500, 1000, 1500, 1000, 2000, 1500, 1500}}

	c.Publish(f)
	c.Publish(f)
	f.Values[rcpc.ArmSwitchChannel] = 2000
	c.Publish(f)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "AIL=1500 ELV=1500 THR=1000 RUD=1500 SW1=1000 SW2=2000 SW3=1500 SW4=1500") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "SW1=2000") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

// serialPort behaves like a tty opened with a read timeout: Read returns
// (0, io.EOF) when nothing arrives in time, and Close does not wake a
// pending Read.
type serialPort struct {
	in      chan []byte
	pending []byte // drain goroutine only

	mu      sync.Mutex
	written bytes.Buffer
	closed  bool
}

func newSerialPort() *serialPort {
	return &serialPort{in: make(chan []byte)}
}

func (p *serialPort) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case p.pending = <-p.in:
		case <-time.After(10 * time.Millisecond):
			return 0, io.EOF
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *serialPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *serialPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *serialPort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

// feed hands data to the drainer, failing if nobody reads it.
func (p *serialPort) feed(t *testing.T, data []byte) {
	t.Helper()
	select {
	case p.in <- data:
	case <-time.After(time.Second):
		t.Fatalf("drainer stopped reading before %q", data)
	}
}

func ack(t *testing.T, dir byte) []byte {
	t.Helper()
	b, err := msp.Encode(msp.MspSetRawRC, nil)
	if err != nil {
		t.Fatal(err)
	}
	b[2] = dir
	return b
}

func TestMSPOutput(t *testing.T) {
	port := newSerialPort()
	chmap, _ := msp.ParseChannelMap("TAER")
	o := newMSPOutput(port, chmap, nil)

	f := rcpc.Frame{Values: [rcpc.NumChannels]int{1100, 1200, 1300, 1400, 1000, 2000, 1500, 1500}}
	if err := o.Publish(f); err != nil {
		t.Fatal(err)
	}
	port.feed(t, ack(t, '>'))

	fr, err := msp.NewReader(bytes.NewReader(port.Written())).ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	if fr.Code != msp.MspSetRawRC {
		t.Errorf("code = %d", fr.Code)
	}
	want := msp.RawRC([]int{1300, 1100, 1200, 1400, 1000, 2000, 1500, 1500})
	if !bytes.Equal(fr.Payload, want) {
		t.Errorf("payload = %v, want %v", fr.Payload, want)
	}

	if err := o.Close(); err != nil {
		t.Fatal(err)
	}
	if err := o.Publish(f); err == nil {
		t.Error("publish after close succeeded")
	}
}

func TestMSPDrainSurvivesCorruption(t *testing.T) {
	port := newSerialPort()
	o := newMSPOutput(port, msp.AETR, nil)
	defer o.Close()

	bad := ack(t, '>')
	bad[len(bad)-1] ^= 0xFF
	port.feed(t, bad)
	port.feed(t, []byte("\x00\xff$$noise"))
	port.feed(t, ack(t, '!'))
	port.feed(t, ack(t, '>'))

	select {
	case <-o.done:
		t.Fatal("drainer exited on corrupt input")
	default:
	}
}

func TestMSPCloseWithSilentPeer(t *testing.T) {
	port := newSerialPort()
	o := newMSPOutput(port, msp.AETR, nil)
	if err := o.Publish(rcpc.Frame{}); err != nil {
		t.Fatal(err)
	}

	closed := make(chan error, 1)
	go func() { closed <- o.Close() }()
	select {
	case err := <-closed:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked while the flight controller was silent")
	}

	port.mu.Lock()
	defer port.mu.Unlock()
	if !port.closed {
		t.Error("port left open")
	}
}
