// Package consoleiface is the interactive operator console.
package consoleiface

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/riking/rcsim/output"
	"github.com/riking/rcsim/rcpc"
)

// Target is the running node as seen from the console.
type Target interface {
	Status() rcpc.Status
	Switches() rcpc.Switches
}

// DeviceLister reports the input devices attached to the system.
type DeviceLister func() ([]string, error)

type Console struct {
	target  Target
	devices DeviceLister
	out     io.Writer

	exitOnce sync.Once
	exit     chan struct{}
	quit     bool
}

func New(target Target, devices DeviceLister) *Console {
	return &Console{
		target:  target,
		devices: devices,
		out:     os.Stdout,
		exit:    make(chan struct{}),
	}
}

// Exit is closed once the operator leaves the console.
func (c *Console) Exit() <-chan struct{} {
	return c.exit
}

func filterCtrlZ(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Run reads commands from the terminal until EOF, ^C on an empty line, or
// the quit command.
func (c *Console) Run() error {
	defer c.exitOnce.Do(func() { close(c.exit) })

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[1m[rcsim]\033[m> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		AutoComplete:        completer(),
		FuncFilterInputRune: filterCtrlZ,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	c.out = l.Stdout()

	for !c.quit {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		c.handleCommand(strings.Fields(line))
	}
	return nil
}

func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, v := range commands {
		if v.Name() == "override" {
			items = append(items, readline.PcItem("override", readline.PcItem("on"), readline.PcItem("off")))
			continue
		}
		items = append(items, readline.PcItem(v.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func findCommand(name string) commandMeta {
	for _, v := range commands {
		for _, cName := range v.Aliases {
			if name == cName {
				return v
			}
		}
	}
	return commandMeta{}
}

func (c *Console) handleCommand(argv []string) {
	if len(argv) == 0 {
		return
	}
	meta := findCommand(argv[0])
	if meta.F == nil {
		fmt.Fprintln(c.out, "unknown command", argv[0])
		return
	}
	meta.F(c, argv[1:])
}

type commandMeta struct {
	F       func(*Console, []string)
	Aliases []string
	Help    string
}

func (m *commandMeta) Name() string {
	return m.Aliases[0]
}

var commands []commandMeta

func addCommand(F func(*Console, []string), help string, names ...string) struct{} {
	commands = append(commands, commandMeta{
		F:       F,
		Help:    help,
		Aliases: names,
	})
	return struct{}{}
}

var _ = addCommand(cmdHelp, "Display this help text.", "help", "?", "hlep")
var _ = addCommand(cmdStatus, "Show the mode, device and latest frame.", "status", "st")
var _ = addCommand(cmdArm, "Move the arm switch to armed.", "arm")
var _ = addCommand(cmdDisarm, "Move the arm switch to disarmed.", "disarm")
var _ = addCommand(cmdOverride, "Set the override switch: override on|off", "override", "ov")
var _ = addCommand(cmdDevices, "List the input devices attached to the system.", "devices", "ls")
var _ = addCommand(cmdQuit, "Stop the node.", "quit", "exit", "q")

func cmdHelp(c *Console, argv []string) {
	fmt.Fprintln(c.out, "Commands:")
	for _, v := range commands {
		fmt.Fprintf(c.out, "  %s - %s\n", v.Aliases[0], v.Help)
	}
}

func cmdStatus(c *Console, argv []string) {
	st := c.target.Status()
	fmt.Fprintf(c.out, "mode: %s\n", st.Mode)
	if st.DeviceName != "" {
		fmt.Fprintf(c.out, "device: %s\n", st.DeviceName)
	}
	if st.Profile != "" {
		fmt.Fprintf(c.out, "profile: %s\n", st.Profile)
	}
	fmt.Fprintf(c.out, "frame: %s\n", output.FormatValues(st.Frame.Values))
}

// switches prints the reason and returns nil when no simulated switches exist.
func (c *Console) switches() rcpc.Switches {
	sw := c.target.Switches()
	if sw == nil {
		fmt.Fprintln(c.out, "not available with a physical transmitter")
	}
	return sw
}

func (c *Console) printResult(r rcpc.Result) {
	if r.Success {
		fmt.Fprintln(c.out, r.Message)
	} else {
		fmt.Fprintln(c.out, "failed:", r.Message)
	}
}

func cmdArm(c *Console, argv []string) {
	if sw := c.switches(); sw != nil {
		c.printResult(sw.Arm())
	}
}

func cmdDisarm(c *Console, argv []string) {
	if sw := c.switches(); sw != nil {
		c.printResult(sw.Disarm())
	}
}

func cmdOverride(c *Console, argv []string) {
	if len(argv) != 1 || (argv[0] != "on" && argv[0] != "off") {
		fmt.Fprintln(c.out, "usage: override on|off")
		return
	}
	sw := c.switches()
	if sw == nil {
		return
	}
	if argv[0] == "on" {
		c.printResult(sw.EnableOverride())
	} else {
		c.printResult(sw.DisableOverride())
	}
}

func cmdDevices(c *Console, argv []string) {
	if c.devices == nil {
		fmt.Fprintln(c.out, "device listing not supported on this build")
		return
	}
	names, err := c.devices()
	if err != nil {
		fmt.Fprintln(c.out, "listing devices:", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(c.out, "no input devices found")
		return
	}
	fmt.Fprintln(c.out, "Devices:")
	for i, n := range names {
		fmt.Fprintf(c.out, "  %d: %s\n", i+1, n)
	}
}

func cmdQuit(c *Console, argv []string) {
	c.quit = true
}
