package main

import (
	"fmt"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/internal/ui"
	"github.com/moffa90/go-fortelion/protocol"
)

type QueryCmd struct {
	Command string `arg:"" help:"Command name or code, e.g. summary-data or 0x20" predictor:"command"`
}

func (c *QueryCmd) Run(g *Globals) error {
	cmd, err := parseCommandArg(c.Command)
	if err != nil {
		return err
	}

	var last bms.Exchange
	s, err := g.open(bms.WithExchangeCallback(func(x bms.Exchange) { last = x }))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext()
	defer stop()

	view, err := s.client.Read(ctx, cmd)
	if len(last.Request) > 0 {
		fmt.Fprintf(ui.Output, "%s %s\n", ui.Bold("Request: "), ui.HexDump(last.Request))
		fmt.Fprintf(ui.Output, "%s %s %s\n", ui.Bold("Response:"), ui.HexDump(last.Response), ui.Dim(last.Elapsed.String()))
	}
	if err != nil {
		return mapDeviceError(err, s.cfg.Device)
	}

	ui.PrintQuantities(decodeAll(view))
	return nil
}

// decoder formats one quantity from a view.
type decoder struct {
	name   string
	decode func(*protocol.FrameView) (string, error)
}

func show[T any](get func(*protocol.FrameView) (T, error), format string) func(*protocol.FrameView) (string, error) {
	return func(v *protocol.FrameView) (string, error) {
		x, err := get(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, x), nil
	}
}

var decoders = []decoder{
	{"cell voltages", func(v *protocol.FrameView) (string, error) {
		mv, err := v.CellVoltages()
		if err != nil {
			return "", err
		}
		return formatCells(mv), nil
	}},
	{"module voltage", show((*protocol.FrameView).ModuleVoltage, "%d mV")},
	{"current", show((*protocol.FrameView).Current, "%d mA")},
	{"temperature", show((*protocol.FrameView).Temperature, "%.1f °C")},
	{"minimum temperature", show((*protocol.FrameView).MinTemperature, "%.1f °C")},
	{"remaining capacity", show((*protocol.FrameView).RemainingCapacity, "%d mAh")},
	{"full charge capacity", show((*protocol.FrameView).FullChargeCapacity, "%d mAh")},
	{"design capacity", show((*protocol.FrameView).DesignCapacity, "%d mAh")},
	{"absolute state of charge", show((*protocol.FrameView).AbsoluteStateOfCharge, "%d%%")},
	{"relative state of charge", show((*protocol.FrameView).RelativeStateOfCharge, "%d%%")},
	{"state of health", show((*protocol.FrameView).StateOfHealth, "%d%%")},
	{"fail status 1", show((*protocol.FrameView).FailStatus1, "0x%02X")},
	{"fail status 2", show((*protocol.FrameView).FailStatus2, "0x%02X")},
	{"fail status 3", show((*protocol.FrameView).FailStatus3, "0x%02X")},
	{"version", show((*protocol.FrameView).VersionInformation, "%s")},
}

// decodeAll decodes every quantity the response carries. Quantities the
// command does not carry are skipped; other errors are shown in place of
// the value.
func decodeAll(v *protocol.FrameView) []ui.Quantity {
	var out []ui.Quantity
	for _, d := range decoders {
		value, err := d.decode(v)
		if protocol.IsNoAppropriateData(err) {
			continue
		}
		if err != nil {
			value = ui.Red(err.Error())
		}
		out = append(out, ui.Quantity{Name: d.name, Value: value})
	}
	return out
}
