// Package rclog gives each component its own mlogger log. A nil *Log
// discards everything, so library code can be used without log files.
package rclog

import (
	"github.com/fpessolano/mlogger"
	"github.com/pkg/errors"
)

type Log struct {
	id int
}

// Declare opens the log file for one component.
func Declare(name string) (*Log, error) {
	id, err := mlogger.DeclareLog(name, false)
	if err != nil {
		return nil, errors.Wrapf(err, "declaring log %s", name)
	}
	if err := mlogger.SetTextLimit(id, 80, 30, 12); err != nil {
		return nil, errors.Wrapf(err, "configuring log %s", name)
	}
	return &Log{id: id}, nil
}

// Verbose echoes every record to the console as well.
func Verbose(on bool) {
	mlogger.Verbose(on)
}

func (l *Log) Info(where, msg string) {
	if l == nil {
		return
	}
	mlogger.Info(l.id, mlogger.LoggerData{Id: where, Message: msg, Data: []int{1}, Aggregate: true})
}

func (l *Log) Warning(where, msg string) {
	if l == nil {
		return
	}
	mlogger.Warning(l.id, mlogger.LoggerData{Id: where, Message: msg, Data: []int{1}, Aggregate: true})
}

func (l *Log) Error(where, msg string) {
	if l == nil {
		return
	}
	mlogger.Error(l.id, mlogger.LoggerData{Id: where, Message: msg, Data: []int{0}, Aggregate: false})
}

func (l *Log) Recovered(where, msg string) {
	if l == nil {
		return
	}
	mlogger.Recovered(l.id, mlogger.LoggerData{Id: where, Message: msg, Data: []int{1}, Aggregate: true})
}
