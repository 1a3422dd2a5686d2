package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/internal/config"
	"github.com/moffa90/go-fortelion/internal/logging"
	"github.com/moffa90/go-fortelion/protocol"
	"github.com/moffa90/go-fortelion/uart"
)

// openDevice opens the serial link to the module. Can be replaced for testing.
var openDevice = func(device string, timeout time.Duration) (io.ReadWriteCloser, error) {
	port, err := uart.Open(device, timeout)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// settings loads the config file and applies flag overrides.
func (g *Globals) settings() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else if path, pathErr := config.DefaultPath(); pathErr == nil {
		cfg, err = config.LoadOptional(path)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return config.Config{}, errConfig(err)
	}

	if g.Device != "" {
		cfg.Device = g.Device
	}
	if g.Timeout > 0 {
		cfg.Timeout = g.Timeout
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	return cfg, nil
}

// session is an open link to one module plus the logger serving it.
type session struct {
	cfg    config.Config
	log    zerolog.Logger
	client *bms.Client

	port      io.Closer
	logCloser io.Closer
}

// connect opens the device named by cfg and wires a logging client to it.
func connect(cfg config.Config, opts ...bms.Option) (*session, error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.File = cfg.Log.File

	logger, logCloser, err := logging.New(lc)
	if err != nil {
		return nil, errConfig(err)
	}

	port, err := openDevice(cfg.Device, cfg.Timeout)
	if err != nil {
		logger.Error().Err(err).Str("device", cfg.Device).Msg("open failed")
		_ = logCloser.Close()
		return nil, mapDeviceError(err, cfg.Device)
	}
	logger.Debug().Str("device", cfg.Device).Dur("timeout", cfg.Timeout).Msg("device opened")

	opts = append([]bms.Option{
		bms.WithLogger(logging.NewBMSLogger(logger)),
		bms.WithCommandDelay(cfg.CommandDelay),
	}, opts...)

	return &session{
		cfg:       cfg,
		log:       logger,
		client:    bms.New(port, opts...),
		port:      port,
		logCloser: logCloser,
	}, nil
}

// open resolves settings and connects in one step.
func (g *Globals) open(opts ...bms.Option) (*session, error) {
	cfg, err := g.settings()
	if err != nil {
		return nil, err
	}
	return connect(cfg, opts...)
}

func (s *session) Close() error {
	return errors.Join(s.port.Close(), s.logCloser.Close())
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseCommandArg accepts a command name ("summary-data") or code ("0x20", "32").
func parseCommandArg(arg string) (protocol.Command, error) {
	if cmd, err := protocol.CommandByName(arg); err == nil {
		return cmd, nil
	}

	code, err := strconv.ParseUint(strings.TrimSpace(arg), 0, 8)
	if err != nil {
		return 0, errUnknownCommand(arg)
	}
	cmd, err := protocol.ParseCommand(byte(code))
	if err != nil {
		return 0, errUnknownCommand(arg)
	}
	return cmd, nil
}

func formatCells(mv []uint32) string {
	parts := make([]string, len(mv))
	for i, v := range mv {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return fmt.Sprintf("[%s] mV", strings.Join(parts, " "))
}
