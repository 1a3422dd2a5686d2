package main

import (
	"fmt"

	"github.com/moffa90/go-fortelion/internal/ui"
	"github.com/moffa90/go-fortelion/uart"
)

// listDevices enumerates serial ports. Can be replaced for testing.
var listDevices = uart.ListDevices

type DevicesCmd struct{}

func (c *DevicesCmd) Run() error {
	devices, err := listDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		ui.PrintWarning("No serial devices found.")
		return nil
	}
	for _, d := range devices {
		fmt.Fprintf(ui.Output, "  %s\n", d)
	}
	return nil
}
