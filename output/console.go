package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/riking/rcsim/rcpc"
)

// consoleOutput prints a line whenever the channel values change.
type consoleOutput struct {
	mu     sync.Mutex
	w      io.Writer
	prev   [rcpc.NumChannels]int
	primed bool
}

func NewConsole(w io.Writer) rcpc.Output {
	return &consoleOutput{w: w}
}

func (c *consoleOutput) Publish(f rcpc.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.primed && f.Values == c.prev {
		return nil
	}
	c.prev = f.Values
	c.primed = true

	_, err := fmt.Fprintf(c.w, "[rc %s] %s\n", f.Stamp.Format("15:04:05.000"), FormatValues(f.Values))
	return err
}

func (c *consoleOutput) Close() error {
	return nil
}

// FormatValues renders a frame as NAME=value pairs in channel order.
func FormatValues(v [rcpc.NumChannels]int) string {
	parts := make([]string, 0, rcpc.NumChannels)
	for _, c := range rcpc.ChannelList {
		parts = append(parts, fmt.Sprintf("%s=%d", c, v[c]))
	}
	return strings.Join(parts, " ")
}
