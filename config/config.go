// Package config loads rcsim settings. Values come from the ini file, then
// the environment (optionally seeded from .env); flags are applied last by
// the caller.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/riking/rcsim/msp"
	"github.com/riking/rcsim/profile"
	"github.com/riking/rcsim/rcpc"
	"gopkg.in/ini.v1"
)

const (
	DefaultFile    = "rcsim.ini"
	DefaultMSPBaud = 115200

	profilePrefix = "profile."
)

type Config struct {
	Rate   float64
	Device string // empty means auto-detect
	Clamp  bool

	ConsoleOutput bool
	MSPPort       string
	MSPBaud       int
	MSPMap        msp.ChannelMap
	DBusOutput    bool

	HTTP           string
	ConsoleControl bool
	DBusControl    bool

	Verbose bool

	// Profiles holds the file's profiles followed by profile.Default.
	Profiles profile.Table
}

func Default() *Config {
	return &Config{
		Rate:          rcpc.DefaultRate,
		Clamp:         true,
		ConsoleOutput: true,
		MSPBaud:       DefaultMSPBaud,
		MSPMap:        msp.AETR,
		Profiles:      append(profile.Table(nil), profile.Default...),
	}
}

// Load reads path and applies the environment. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "loading .env")
	}
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return fromINI(f)
}

func fromINI(f *ini.File) (*Config, error) {
	c := Default()

	rc := f.Section("rc")
	c.Rate = rc.Key("rate").MustFloat64(c.Rate)
	c.Device = rc.Key("device").String()
	c.Clamp = rc.Key("clamp").MustBool(c.Clamp)
	c.Verbose = rc.Key("verbose").MustBool(false)

	out := f.Section("output")
	c.ConsoleOutput = out.Key("console").MustBool(c.ConsoleOutput)
	c.MSPPort = out.Key("msp_port").String()
	c.MSPBaud = out.Key("msp_baud").MustInt(c.MSPBaud)
	if s := out.Key("msp_map").String(); s != "" {
		m, err := msp.ParseChannelMap(s)
		if err != nil {
			return nil, errors.Wrap(err, "[output] msp_map")
		}
		c.MSPMap = m
	}
	c.DBusOutput = out.Key("dbus").MustBool(false)

	ctl := f.Section("control")
	c.HTTP = ctl.Key("http").String()
	c.ConsoleControl = ctl.Key("console").MustBool(false)
	c.DBusControl = ctl.Key("dbus").MustBool(false)

	var extra profile.Table
	for _, sec := range f.Sections() {
		if !strings.HasPrefix(sec.Name(), profilePrefix) {
			continue
		}
		p, err := parseProfile(sec)
		if err != nil {
			return nil, err
		}
		extra = append(extra, p)
	}
	c.Profiles = append(extra, c.Profiles...)
	if err := c.Profiles.Validate(); err != nil {
		return nil, err
	}

	return c, c.Check()
}

func parseProfile(sec *ini.Section) (*profile.Profile, error) {
	p := &profile.Profile{
		Name: strings.TrimPrefix(sec.Name(), profilePrefix),
		Keys: sec.Key("keys").Strings(","),
	}
	for _, k := range sec.Keys() {
		if k.Name() == "keys" {
			continue
		}
		ch, ok := rcpc.ChannelByName(strings.ToUpper(k.Name()))
		if !ok {
			return nil, errors.Errorf("profile %s: unknown channel %q", p.Name, k.Name())
		}
		src, err := profile.ParseSource(k.String())
		if err != nil {
			return nil, errors.Wrapf(err, "profile %s channel %s", p.Name, ch)
		}
		p.Channels[ch] = src
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup("RCSIM_RATE"); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "RCSIM_RATE")
		}
		c.Rate = rate
	}
	if v, ok := lookup("RCSIM_DEVICE"); ok {
		c.Device = v
	}
	if v, ok := lookup("RCSIM_HTTP"); ok {
		c.HTTP = v
	}
	if v, ok := lookup("RCSIM_MSP_PORT"); ok {
		c.MSPPort = v
	}
	return c.Check()
}

// Check rejects settings the node cannot run with.
func (c *Config) Check() error {
	if c.Rate <= 0 {
		return errors.Errorf("rate must be positive, got %v", c.Rate)
	}
	if c.MSPPort != "" && c.MSPBaud <= 0 {
		return errors.Errorf("msp_baud must be positive, got %d", c.MSPBaud)
	}
	return nil
}
