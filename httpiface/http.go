// Package httpiface serves the node over HTTP: frame and status queries, and
// the switch triggers when the transmitter is simulated.
package httpiface

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/riking/rcsim/rclog"
	"github.com/riking/rcsim/rcpc"
)

const serverTimeout = 10 * time.Second

// Target is the running node as seen from HTTP.
type Target interface {
	Latest() rcpc.Frame
	Status() rcpc.Status
	Switches() rcpc.Switches
}

// NewRouter builds the route table. Trigger routes exist only when the
// target has simulated switches.
func NewRouter(t Target, log *rclog.Log) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/rc", jsonHandler(log, "httpiface.rc", func() interface{} {
		return t.Latest()
	})).Methods(http.MethodGet)
	r.Handle("/status", jsonHandler(log, "httpiface.status", func() interface{} {
		return t.Status()
	})).Methods(http.MethodGet)

	sw := t.Switches()
	if sw == nil {
		return r
	}
	triggers := map[string]func() rcpc.Result{
		"/arm":              sw.Arm,
		"/disarm":           sw.Disarm,
		"/override/enable":  sw.EnableOverride,
		"/override/disable": sw.DisableOverride,
	}
	for path, f := range triggers {
		f := f
		r.Handle(path, jsonHandler(log, "httpiface"+path, func() interface{} {
			res := f()
			log.Info("httpiface.trigger", res.Message)
			return res
		})).Methods(http.MethodPost)
	}
	return r
}

func jsonHandler(log *rclog.Log, where string, f func() interface{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				log.Recovered(where, "route terminated and recovered unexpectedly")
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(f()); err != nil {
			log.Warning(where, "writing response: "+err.Error())
		}
	})
}

type Server struct {
	srv *http.Server
	ln  net.Listener
	log *rclog.Log
}

// Start listens on addr and serves in the background.
func Start(addr string, t Target, log *rclog.Log) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", addr)
	}
	s := &Server{
		srv: &http.Server{
			ReadTimeout:    serverTimeout,
			WriteTimeout:   serverTimeout,
			IdleTimeout:    3 * serverTimeout,
			MaxHeaderBytes: 1 << 20,
			Handler:        NewRouter(t, log),
		},
		ln:  ln,
		log: log,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error("httpiface.Start", "serve error: "+err.Error())
		}
	}()
	log.Info("httpiface.Start", "service started on "+ln.Addr().String())
	return s, nil
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown waits for open requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
