package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/riking/rcsim/msp"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
	"github.com/tarm/serial"
)

// readTimeout bounds each port read so the drainer notices Close even when
// the flight controller is silent.
const readTimeout = 100 * time.Millisecond

// mspOutput feeds every frame to a flight controller as MSP_SET_RAW_RC.
type mspOutput struct {
	port  io.ReadWriteCloser
	chmap msp.ChannelMap
	log   *rclog.Log

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewMSP opens a serial port to a flight controller.
func NewMSP(portName string, baudRate int, chmap msp.ChannelMap, log *rclog.Log) (rcpc.Output, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        portName,
		Baud:        baudRate,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", portName)
	}
	log.Info("output.NewMSP", fmt.Sprintf("connected to %s @ %dbps, channel map %s", portName, baudRate, chmap))
	return newMSPOutput(port, chmap, log), nil
}

func newMSPOutput(port io.ReadWriteCloser, chmap msp.ChannelMap, log *rclog.Log) *mspOutput {
	o := &mspOutput{
		port:  port,
		chmap: chmap,
		log:   log,
		done:  make(chan struct{}),
	}
	go o.drain()
	return o
}

func (o *mspOutput) Publish(f rcpc.Frame) error {
	values := o.chmap.Apply(f.Values[:])
	frame, err := msp.Encode(msp.MspSetRawRC, msp.RawRC(values))
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return errors.New("msp output closed")
	}
	_, err = o.port.Write(frame)
	return errors.Wrap(err, "writing MSP_SET_RAW_RC")
}

// drain consumes the flight controller's acknowledgements so the port buffer
// never fills, reporting rejected commands. Read timeouts and corrupt frames
// are skipped; it stops on Close or on a port error.
func (o *mspOutput) drain() {
	defer close(o.done)

	r := msp.NewReader(o.port)
	for {
		fr, err := r.ReadFrame()
		if o.isClosed() {
			return
		}
		switch {
		case err == nil:
			if fr.IsError() {
				o.log.Warning("output.mspOutput", fmt.Sprintf("flight controller rejected MSP command %d", fr.Code))
			}
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			// read timeout with nothing (or half a frame) pending
		case errors.Cause(err) == msp.ErrMalformed:
			o.log.Warning("output.mspOutput", err.Error())
		default:
			o.log.Error("output.mspOutput", "reading from flight controller: "+err.Error())
			return
		}
	}
}

func (o *mspOutput) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

func (o *mspOutput) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.mu.Unlock()

	// the drainer exits within one read timeout
	<-o.done
	return o.port.Close()
}
