// Package profile holds the controller profiles: how to recognise a
// supported transmitter by its reported name, and how its raw axes and
// buttons map onto the RC channels.
package profile

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/riking/rcsim/rcpc"
)

type Profile struct {
	Name string
	// A device matches if any key is a substring of its name. Case matters.
	Keys     []string
	Channels [rcpc.NumChannels]Source
}

func (p *Profile) Matches(deviceName string) bool {
	for _, key := range p.Keys {
		if strings.Contains(deviceName, key) {
			return true
		}
	}
	return false
}

// Read returns the nominal [-1, 1] value of channel c.
func (p *Profile) Read(j rcpc.RawState, c rcpc.Channel) float64 {
	return p.Channels[c].Read(j)
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile has no name")
	}
	if len(p.Keys) == 0 {
		return errors.Errorf("profile %s has no identifying keys", p.Name)
	}
	for _, key := range p.Keys {
		if key == "" {
			return errors.Errorf("profile %s has an empty key", p.Name)
		}
	}
	for _, c := range rcpc.ChannelList {
		if !p.Channels[c].IsSet() {
			return errors.Errorf("profile %s has no mapping for channel %s", p.Name, c)
		}
	}
	return nil
}

// Table is an ordered list of profiles. Order decides which profile wins when
// a device name matches more than one.
type Table []*Profile

// Match returns the first profile matching deviceName, or nil.
func (t Table) Match(deviceName string) *Profile {
	for _, p := range t {
		if p.Matches(deviceName) {
			return p
		}
	}
	return nil
}

func (t Table) Validate() error {
	seen := make(map[string]bool)
	for _, p := range t {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.Errorf("duplicate profile %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
