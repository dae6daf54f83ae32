package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tableflip.dev/polines/pkg/app"
	"tableflip.dev/polines/pkg/commands/options"
	"tableflip.dev/polines/pkg/config"
	"tableflip.dev/polines/pkg/dispatch"
	"tableflip.dev/polines/pkg/lineitem"
	"tableflip.dev/polines/pkg/logging"
)

// runtime is the resolved configuration and logger for one invocation.
type runtime struct {
	cfg     *config.Config
	log     *logrus.Logger
	closers []io.Closer
}

// setup loads configuration, applies flag overrides and builds a logger
// writing to logOut. When logOut is nil the configured log file is used,
// or nothing is logged at all.
func setup(bo *options.BridgeOptions, logOut io.Writer) (*runtime, error) {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		return nil, err
	}
	if bo != nil {
		if bo.Bridge != "" {
			cfg.Bridge = bo.Bridge
		}
		if bo.Script != "" {
			cfg.Script = bo.Script
		}
		if bo.Outbox != "" {
			cfg.Outbox = bo.Outbox
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	if logOut == nil {
		logOut = io.Discard
		if cfg.Log.File != "" {
			f, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return nil, err
			}
			rt.closers = append(rt.closers, f)
			logOut = f
		}
	}
	rt.log, err = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})
	if err != nil {
		rt.Close()
		return nil, err
	}
	if cfg.File != "" {
		rt.log.WithField("file", cfg.File).Debug("config loaded")
	}
	return rt, nil
}

func (rt *runtime) Close() {
	for _, c := range rt.closers {
		_ = c.Close()
	}
}

// variant picks the flag value over the configured one.
func (rt *runtime) variant(flag string) string {
	if flag != "" {
		return flag
	}
	return rt.cfg.Variant
}

// bridge builds the configured host bridge. stdout is where WriterBridge
// output lands.
func (rt *runtime) bridge(stdout io.Writer) (dispatch.Bridge, error) {
	switch rt.cfg.Bridge {
	case config.BridgeStdout:
		if stdout == nil {
			return nil, errors.New("the stdout bridge is not available here")
		}
		return dispatch.NewWriterBridge(stdout), nil
	case config.BridgeOutbox:
		if rt.cfg.Outbox == "" {
			return nil, errors.New("outbox bridge needs an outbox directory")
		}
		return dispatch.NewOutboxBridge(rt.cfg.Outbox), nil
	case config.BridgeLog:
		return dispatch.LogBridge{Log: rt.log}, nil
	}
	return nil, fmt.Errorf("unknown bridge %q", rt.cfg.Bridge)
}

func (rt *runtime) editor(bridge dispatch.Bridge) *app.Editor {
	opts := []app.Option{
		app.WithScript(rt.cfg.Script),
		app.WithLogger(rt.log),
		app.WithVocabulary(lineitem.StatusVocabulary(rt.cfg.Status)),
	}
	if bridge != nil {
		opts = append(opts, app.WithBridge(bridge))
	}
	return app.New(opts...)
}
