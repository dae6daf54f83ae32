package dispatch

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultScript is the host script that receives every notification.
const DefaultScript = "Manage: PO Lines"

// Dispatcher encodes changes and hands them to the bridge. Notify never
// fails; problems are logged.
type Dispatcher struct {
	Bridge Bridge
	Script string
	Log    logrus.FieldLogger
}

// New returns a dispatcher for bridge. A nil bridge is allowed.
func New(bridge Bridge, script string, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{Bridge: bridge, Script: script, Log: log}
}

func (d *Dispatcher) script() string {
	if d.Script == "" {
		return DefaultScript
	}
	return d.Script
}

func (d *Dispatcher) log() logrus.FieldLogger {
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return d.Log
}

// Notify sends c to the host.
func (d *Dispatcher) Notify(c Change) {
	if d == nil || c == nil {
		return
	}
	log := d.log().WithFields(logrus.Fields{"script": d.script(), "mode": c.Mode()})

	param, err := Encode(c)
	if err != nil {
		log.WithError(err).Error("encode change")
		return
	}
	if d.Bridge == nil {
		log.WithField("parameter", string(param)).Warn("no host bridge, change not delivered")
		return
	}
	if err := d.perform(string(param)); err != nil {
		log.WithError(err).Error("host bridge failed")
		return
	}
	log.Debug(c.Describe())
}

func (d *Dispatcher) perform(param string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch: bridge panic: %v", r)
		}
	}()
	return d.Bridge.PerformScript(d.script(), param)
}

// LogBridge only traces calls. It stands in when no host is attached.
type LogBridge struct {
	Log logrus.FieldLogger
}

// PerformScript implements Bridge.
func (b LogBridge) PerformScript(script, parameter string) error {
	if b.Log != nil {
		b.Log.WithFields(logrus.Fields{"script": script, "parameter": parameter}).Info("perform script")
	}
	return nil
}
