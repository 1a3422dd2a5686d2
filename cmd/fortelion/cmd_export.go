package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/internal/exporter"
	"github.com/moffa90/go-fortelion/internal/metrics"
)

type ExportCmd struct {
	Listen   string        `help:"Address to serve /metrics, /snapshot and /health on" placeholder:"ADDR"`
	Interval time.Duration `help:"Time between snapshots" placeholder:"DUR"`
}

func (c *ExportCmd) Run(g *Globals) error {
	cfg, err := g.settings()
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Exporter.Listen = c.Listen
	}
	if c.Interval > 0 {
		cfg.Exporter.Interval = c.Interval
	}

	device := cfg.Device
	s, err := connect(cfg, bms.WithExchangeCallback(func(x bms.Exchange) {
		metrics.RecordExchange(device, x)
	}))
	if err != nil {
		return err
	}
	defer s.Close()

	gin.SetMode(gin.ReleaseMode)
	e := exporter.New(s.client, exporter.Options{
		Device:      device,
		Interval:    cfg.Exporter.Interval,
		CORSOrigins: cfg.Exporter.CORSOrigins,
		Logger:      s.log.With().Str("component", "exporter").Logger(),
	})

	ctx, stop := signalContext()
	defer stop()

	return e.Serve(ctx, cfg.Exporter.Listen)
}
