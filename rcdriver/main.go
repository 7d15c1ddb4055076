package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riking/rcsim/config"
	"github.com/riking/rcsim/consoleiface"
	"github.com/riking/rcsim/dbusiface"
	"github.com/riking/rcsim/httpiface"
	"github.com/riking/rcsim/joystick"
	"github.com/riking/rcsim/msp"
	"github.com/riking/rcsim/output"
	"github.com/riking/rcsim/rc"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
)

const shutdownTimeout = 2 * time.Second

var (
	flagConfig  = flag.String("c", config.DefaultFile, "configuration file")
	flagDevice  = flag.String("d", "", "joystick device node (default: first one found)")
	flagRate    = flag.Float64("rate", rcpc.DefaultRate, "frame rate in Hz")
	flagClamp   = flag.Bool("clamp", true, "limit physical inputs to the nominal range")
	flagHTTP    = flag.String("http", "", "serve the HTTP interface on this address")
	flagMSP     = flag.String("msp", "", "send frames to a flight controller on this serial port")
	flagMSPMap  = flag.String("mspmap", "", "channel order expected by the flight controller, e.g. TAER")
	flagConsole = flag.Bool("console", false, "start the interactive console")
	flagQuiet   = flag.Bool("quiet", false, "do not print frames to stdout")
	flagDBus    = flag.Bool("dbus", false, "publish frames and switches on the session bus")
	flagList    = flag.Bool("list", false, "list input devices and exit")
	flagVerbose = flag.Bool("verbose", false, "echo log records to the console")
)

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *config.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Device = *flagDevice
		case "rate":
			cfg.Rate = *flagRate
		case "clamp":
			cfg.Clamp = *flagClamp
		case "http":
			cfg.HTTP = *flagHTTP
		case "msp":
			cfg.MSPPort = *flagMSP
		case "mspmap":
			m, e := msp.ParseChannelMap(*flagMSPMap)
			if e != nil {
				err = e
				return
			}
			cfg.MSPMap = m
		case "console":
			cfg.ConsoleControl = *flagConsole
		case "quiet":
			cfg.ConsoleOutput = !*flagQuiet
		case "dbus":
			cfg.DBusOutput = *flagDBus
			cfg.DBusControl = *flagDBus
		case "verbose":
			cfg.Verbose = *flagVerbose
		}
	})
	if err != nil {
		return err
	}
	// the readline console owns the terminal; frame lines would break its prompt
	if cfg.ConsoleControl {
		cfg.ConsoleOutput = false
	}
	return cfg.Check()
}

type logs struct {
	node, output, http, dbus *rclog.Log
}

func declareLogs() (logs, error) {
	var l logs
	var err error
	for _, d := range []struct {
		name string
		dst  **rclog.Log
	}{
		{"rcsim_node", &l.node},
		{"rcsim_output", &l.output},
		{"rcsim_http", &l.http},
		{"rcsim_dbus", &l.dbus},
	} {
		if *d.dst, err = rclog.Declare(d.name); err != nil {
			return l, err
		}
	}
	return l, nil
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run starts the node and blocks until it stops. Deferred cleanup runs on
// every path, so failures return an exit code instead of calling os.Exit.
func run() int {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Println("[FATAL] Could not load configuration:", err)
		return 2
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Println("[FATAL] Invalid command line:", err)
		return 2
	}

	if *flagList {
		names, err := listDevices()
		if err != nil {
			fmt.Println("[FATAL] Could not list devices:", err)
			return 1
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return 0
	}

	rclog.Verbose(cfg.Verbose)
	l, err := declareLogs()
	if err != nil {
		fmt.Println("[FATAL] Could not open log files:", err)
		return 8
	}

	device := cfg.Device
	if device == "" {
		device = defaultDevice()
	}
	fmt.Println("[INFO] Using input device", device)
	res := rc.Resolve(func() (rcpc.Joystick, error) {
		return joystick.Open(device)
	}, cfg.Profiles, l.node)

	node := rc.NewNode(res, rc.Options{
		Rate:  cfg.Rate,
		Clamp: cfg.Clamp,
		Log:   l.node,
	})
	defer node.Close()
	fmt.Printf("[INFO] Running in %s mode at %g Hz\n", node.Mode(), cfg.Rate)

	if cfg.ConsoleOutput {
		node.AddOutput(output.NewConsole(os.Stdout))
	}
	if cfg.MSPPort != "" {
		o, err := output.NewMSP(cfg.MSPPort, cfg.MSPBaud, cfg.MSPMap, l.output)
		if err != nil {
			fmt.Println("[FATAL] Could not open flight controller:", err)
			return 8
		}
		node.AddOutput(o)
	}

	if cfg.DBusOutput || cfg.DBusControl {
		svc, err := dbusiface.Connect(l.dbus)
		if err != nil {
			fmt.Println("[FATAL] Could not connect to the session bus:", err)
			return 8
		}
		defer svc.Close()
		if cfg.DBusControl {
			if err := svc.Export(node.Latest, node.Switches()); err != nil {
				fmt.Println("[FATAL] Could not export D-Bus interface:", err)
				return 8
			}
		}
		if cfg.DBusOutput {
			node.AddOutput(svc.Output())
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.HTTP != "" {
		srv, err := httpiface.Start(cfg.HTTP, node, l.http)
		if err != nil {
			fmt.Println("[FATAL] Could not start HTTP interface:", err)
			return 8
		}
		fmt.Println("[INFO] HTTP interface on", srv.Addr())
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			srv.Shutdown(sctx)
		}()
	}

	if cfg.ConsoleControl {
		con := consoleiface.New(node, listDevices)
		go func() {
			if err := con.Run(); err != nil {
				fmt.Println("[ERROR] Console failed:", err)
			}
		}()
		go func() {
			select {
			case <-con.Exit():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	node.Run(ctx)
	fmt.Println("exiting...")
	return 0
}
