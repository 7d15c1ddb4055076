package rc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riking/rcsim/profile"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
)

type Options struct {
	// Rate is the frame rate in Hz. Zero means rcpc.DefaultRate.
	Rate float64
	// Clamp limits mapper output to [-1, 1] in physical mode.
	Clamp bool
	Log   *rclog.Log
}

// Node runs the tick loop and fans each frame out to the outputs.
type Node struct {
	// write-once
	res      Resolution
	gen      Generator
	fallback *FallbackState
	period   time.Duration
	log      *rclog.Log

	// protected by mu
	mu       sync.Mutex
	outputs  []rcpc.Output
	latest   rcpc.Frame
	ticks    uint64
	lastErr  string
	outFails map[int]bool // by index in outputs
}

func NewNode(res Resolution, opts Options) *Node {
	rate := opts.Rate
	if rate <= 0 {
		rate = rcpc.DefaultRate
	}
	n := &Node{
		res:      res,
		period:   time.Duration(float64(time.Second) / rate),
		log:      opts.Log,
		outFails: make(map[int]bool),
	}
	if res.Mode == ModePhysical {
		n.gen = NewPhysical(res.Joystick, res.Profile, opts.Clamp)
		// sticks centred until the first tick samples the device
		for i := range n.latest.Values {
			n.latest.Values[i] = rcpc.ChannelMid
		}
	} else {
		n.fallback = NewFallbackState()
		n.gen = NewSynthetic(n.fallback)
		n.latest.Values = n.fallback.Values()
	}
	return n
}

func (n *Node) AddOutput(o rcpc.Output) {
	n.mu.Lock()
	n.outputs = append(n.outputs, o)
	n.mu.Unlock()
}

func (n *Node) Mode() Mode { return n.res.Mode }
func (n *Node) Period() time.Duration { return n.period }
func (n *Node) DeviceName() string { return n.res.DeviceName }

// Profile is the bound controller profile, nil in synthetic mode.
func (n *Node) Profile() *profile.Profile { return n.res.Profile }

// Switches returns the simulated transmitter's controls, or nil when a
// physical transmitter drives the frames.
func (n *Node) Switches() rcpc.Switches {
	if n.fallback == nil {
		return nil
	}
	return n.fallback
}

// Tick produces one frame stamped now and publishes it to every output.
func (n *Node) Tick(now time.Time) rcpc.Frame {
	f, err := n.gen.Generate(now)
	n.noteError(err)

	n.mu.Lock()
	outputs := n.outputs
	n.mu.Unlock()

	for i, o := range outputs {
		err := o.Publish(f)
		n.noteOutput(i, o, err)
	}

	n.mu.Lock()
	n.latest = f
	n.ticks++
	n.mu.Unlock()
	return f
}

// noteError logs generator errors when they start and stop, not every tick.
func (n *Node) noteError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	n.mu.Lock()
	changed := msg != n.lastErr
	n.lastErr = msg
	n.mu.Unlock()

	if !changed {
		return
	}
	if err != nil {
		n.log.Warning("rc.Node.Tick", "input device error, repeating last state: "+msg)
	} else {
		n.log.Info("rc.Node.Tick", "input device recovered")
	}
}

func (n *Node) noteOutput(i int, o rcpc.Output, err error) {
	n.mu.Lock()
	failing := n.outFails[i]
	n.outFails[i] = err != nil
	n.mu.Unlock()

	if err != nil && !failing {
		n.log.Warning("rc.Node.Tick", fmt.Sprintf("publishing to %T failed: %v", o, err))
	} else if err == nil && failing {
		n.log.Info("rc.Node.Tick", fmt.Sprintf("publishing to %T recovered", o))
	}
}

func (n *Node) Latest() rcpc.Frame {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.latest
}

func (n *Node) Ticks() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ticks
}

func (n *Node) Status() rcpc.Status {
	st := rcpc.Status{
		Mode:       n.res.Mode.String(),
		DeviceName: n.res.DeviceName,
		Frame:      n.Latest(),
	}
	if n.res.Profile != nil {
		st.Profile = n.res.Profile.Name
	}
	return st
}

// Run ticks until ctx is cancelled.
func (n *Node) Run(ctx context.Context) error {
	n.log.Info("rc.Node.Run", fmt.Sprintf("emitting frames every %v in %s mode", n.period, n.res.Mode))

	ticker := time.NewTicker(n.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			n.log.Info("rc.Node.Run", "stopped")
			return ctx.Err()
		case <-ticker.C:
			n.Tick(time.Now())
		}
	}
}

// Close closes the outputs and the input device.
func (n *Node) Close() error {
	n.mu.Lock()
	outputs := n.outputs
	n.outputs = nil
	n.mu.Unlock()

	var first error
	for _, o := range outputs {
		if err := o.Close(); err != nil && first == nil {
			first = err
		}
	}
	if n.res.Joystick != nil {
		if err := n.res.Joystick.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
