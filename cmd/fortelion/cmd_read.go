package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/internal/ui"
)

type ReadCmd struct {
	Format string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

func (c *ReadCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext()
	defer stop()

	snap, err := s.client.Snapshot(ctx)
	if err != nil {
		return mapDeviceError(err, s.cfg.Device)
	}

	return writeSnapshot(ui.Output, s.cfg.Device, snap, c.Format)
}

// writeSnapshot renders snap in the requested format.
func writeSnapshot(w io.Writer, device string, snap *bms.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		ui.PrintSnapshot(device, snap)
		return nil
	}
}
