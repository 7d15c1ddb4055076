// Package dbusiface publishes the node on the session bus: the switch
// triggers as methods and every frame as a signal.
package dbusiface

import (
	"sync"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"
	"github.com/pkg/errors"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
)

const (
	//BusName the well-known name requested on the session bus
	BusName = "org.rcsim.Transmitter"
	//Path the object path of the transmitter
	Path = dbus.ObjectPath("/org/rcsim/Transmitter")
	//Interface the rcsim transmitter interface
	Interface = "org.rcsim.Transmitter1"
	//FrameSignal the signal carrying each published frame
	FrameSignal = Interface + ".Frame"
)

// frameObject answers frame queries; it is exported in every mode.
type frameObject struct {
	latest func() rcpc.Frame
}

// Frame returns the latest frame's channel values in channel order.
func (o frameObject) Frame() ([]int32, *dbus.Error) {
	return frameArgs(o.latest()), nil
}

// transmitter adds the switch triggers of the simulated transmitter.
type transmitter struct {
	frameObject
	sw rcpc.Switches
}

func (t transmitter) Arm() (bool, string, *dbus.Error) {
	return reply(t.sw.Arm())
}

func (t transmitter) Disarm() (bool, string, *dbus.Error) {
	return reply(t.sw.Disarm())
}

func (t transmitter) EnableOverride() (bool, string, *dbus.Error) {
	return reply(t.sw.EnableOverride())
}

func (t transmitter) DisableOverride() (bool, string, *dbus.Error) {
	return reply(t.sw.DisableOverride())
}

func reply(r rcpc.Result) (bool, string, *dbus.Error) {
	return r.Success, r.Message, nil
}

func frameArgs(f rcpc.Frame) []int32 {
	out := make([]int32, len(f.Values))
	for i, v := range f.Values {
		out[i] = int32(v)
	}
	return out
}

var triggerArgs = []introspect.Arg{
	{
		Name:      "success",
		Type:      "b",
		Direction: "out",
	},
	{
		Name:      "message",
		Type:      "s",
		Direction: "out",
	},
}

// introspectData describes Interface; the trigger methods are listed only
// when the simulated switches are exported.
func introspectData(withSwitches bool) introspect.Interface {
	iface := introspect.Interface{
		Name: Interface,
		Methods: []introspect.Method{
			{
				Name: "Frame",
				Args: []introspect.Arg{
					{
						Name:      "values",
						Type:      "ai",
						Direction: "out",
					},
				},
			},
		},
		Signals: []introspect.Signal{
			{
				Name: "Frame",
				Args: []introspect.Arg{
					{
						Name: "stamp",
						Type: "x",
					},
					{
						Name: "values",
						Type: "ai",
					},
				},
			},
		},
	}
	if withSwitches {
		for _, name := range []string{"Arm", "Disarm", "EnableOverride", "DisableOverride"} {
			iface.Methods = append(iface.Methods, introspect.Method{Name: name, Args: triggerArgs})
		}
	}
	return iface
}

func introspectNode(withSwitches bool) *introspect.Node {
	return &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			introspectData(withSwitches),
		},
	}
}

// Service owns the session bus connection.
type Service struct {
	conn *dbus.Conn
	log  *rclog.Log

	mu     sync.Mutex
	closed bool
}

// Connect joins the session bus and claims BusName.
func Connect(log *rclog.Log) (*Service, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to session bus")
	}
	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "requesting %s", BusName)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, errors.Errorf("bus name %s already taken", BusName)
	}
	log.Info("dbusiface.Connect", "registered "+BusName)
	return &Service{conn: conn, log: log}, nil
}

// Export publishes the transmitter object. sw may be nil, in which case only
// frame queries are offered.
func (s *Service) Export(latest func() rcpc.Frame, sw rcpc.Switches) error {
	var obj interface{} = frameObject{latest: latest}
	if sw != nil {
		obj = transmitter{frameObject: frameObject{latest: latest}, sw: sw}
	}
	if err := s.conn.Export(obj, Path, Interface); err != nil {
		return errors.Wrap(err, "exporting transmitter")
	}
	node := introspectNode(sw != nil)
	if err := s.conn.Export(introspect.NewIntrospectable(node), Path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return errors.Wrap(err, "exporting introspection data")
	}
	return nil
}

// Output returns an rcpc.Output emitting FrameSignal for every frame.
func (s *Service) Output() rcpc.Output {
	return signalOutput{s}
}

type signalOutput struct {
	s *Service
}

func (o signalOutput) Publish(f rcpc.Frame) error {
	o.s.mu.Lock()
	closed := o.s.closed
	o.s.mu.Unlock()
	if closed {
		return errors.New("dbus connection closed")
	}
	return o.s.conn.Emit(Path, FrameSignal, f.Stamp.UnixNano(), frameArgs(f))
}

// Close is a no-op; the connection belongs to the Service.
func (o signalOutput) Close() error {
	return nil
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
