package main

import (
	"fmt"

	"github.com/moffa90/go-fortelion/fault"
	"github.com/moffa90/go-fortelion/internal/ui"
)

type FaultsCmd struct {
	Command string `short:"c" default:"summary-data" help:"Command whose response supplies the fail status registers" predictor:"command"`
	All     bool   `short:"a" help:"Show every fault item, not only active ones"`
}

func (c *FaultsCmd) Run(g *Globals) error {
	cmd, err := parseCommandArg(c.Command)
	if err != nil {
		return err
	}

	s, err := g.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext()
	defer stop()

	view, err := s.client.Read(ctx, cmd)
	if err != nil {
		return mapDeviceError(err, s.cfg.Device)
	}

	readings := fault.Collect(view)
	fmt.Fprintf(ui.Output, "%s %s\n", ui.Bold("Fault states from"), ui.Cyan(cmd.Name()))
	ui.PrintFaults(readings, !c.All)
	return nil
}
