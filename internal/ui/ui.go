// Package ui provides formatted output utilities for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/fault"
)

// Color functions for consistent styling.
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
)

// Output is the destination for UI output.
// Defaults to os.Stdout but can be overridden for testing.
var Output io.Writer = os.Stdout

// FaultBadge returns a colored indicator for a fault state.
func FaultBadge(s fault.State) string {
	switch s {
	case fault.OK:
		return Green("● OK")
	case fault.NG:
		return Red("● NG")
	default:
		return Dim("○ Unknown")
	}
}

// SocBadge colors a state of charge percentage by level.
func SocBadge(percent uint32) string {
	text := fmt.Sprintf("%d%%", percent)
	switch {
	case percent >= 50:
		return Green(text)
	case percent >= 20:
		return Yellow(text)
	default:
		return Red(text)
	}
}

// HexDump formats a frame as space-separated hex bytes.
func HexDump(b []byte) string {
	return fmt.Sprintf("% X", b)
}

// PrintSnapshot prints a snapshot in a formatted style.
func PrintSnapshot(device string, s *bms.Snapshot) {
	fmt.Fprintf(Output, "%s %s\n", Bold("Device:"), Blue(device))
	fmt.Fprintf(Output, "%s %s (relative) %s (absolute)\n", Bold("State of Charge:"),
		SocBadge(s.RelativeStateOfCharge), Dim(fmt.Sprintf("%d%%", s.AbsoluteStateOfCharge)))
	fmt.Fprintf(Output, "%s %d%%\n", Bold("State of Health:"), s.StateOfHealth)
	fmt.Fprintf(Output, "%s %.3f V\n", Bold("Module Voltage:"), float64(s.ModuleVoltage)/1000)
	fmt.Fprintf(Output, "%s %.2f A %s\n", Bold("Current:"), float64(s.Current)/1000, Dim(direction(s.Current)))
	fmt.Fprintf(Output, "%s %.1f °C max, %.1f °C min\n", Bold("Temperature:"), s.MaxTemperature, s.MinTemperature)
	fmt.Fprintf(Output, "%s %d / %d mAh %s\n", Bold("Capacity:"), s.RemainingCapacity, s.FullChargeCapacity,
		Dim(fmt.Sprintf("(design %d mAh)", s.DesignCapacity)))

	fmt.Fprintln(Output, Bold("Cells:"))
	for i, mv := range s.CellVoltages {
		fmt.Fprintf(Output, "  %s %d mV\n", Cyan(fmt.Sprintf("#%d", i+1)), mv)
	}

	active := s.ActiveFaults()
	if len(active) == 0 {
		fmt.Fprintf(Output, "%s %s\n", Bold("Faults:"), Green("none"))
		return
	}
	names := make([]string, len(active))
	for i, item := range active {
		names[i] = item.String()
	}
	fmt.Fprintf(Output, "%s %s\n", Bold("Faults:"), Red(strings.Join(names, ", ")))
}

func direction(ma int32) string {
	switch {
	case ma > 0:
		return "(charging)"
	case ma < 0:
		return "(discharging)"
	default:
		return "(idle)"
	}
}

// PrintFaults prints one line per fault item. With onlyActive set, items
// that are not NG are skipped.
func PrintFaults(readings []fault.Reading, onlyActive bool) {
	printed := 0
	for _, r := range readings {
		if onlyActive && r.State != fault.NG {
			continue
		}
		fmt.Fprintf(Output, "  %-32s %s\n", r.Item, FaultBadge(r.State))
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(Output, "No active faults.")
	}
}

// Quantity is one decoded value for display.
type Quantity struct {
	Name  string
	Value string
}

// PrintQuantities prints decoded values as an aligned list.
func PrintQuantities(qs []Quantity) {
	width := 0
	for _, q := range qs {
		if len(q.Name) > width {
			width = len(q.Name)
		}
	}
	for _, q := range qs {
		fmt.Fprintf(Output, "  %s %s\n", Bold(fmt.Sprintf("%-*s", width+1, q.Name+":")), q.Value)
	}
}

// PrintSuccess prints a success message with green checkmark.
func PrintSuccess(message string) {
	fmt.Fprintf(Output, "%s %s\n", Green("✓"), message)
}

// PrintError prints an error message with red X.
func PrintError(message string) {
	fmt.Fprintf(Output, "%s %s\n", Red("✗"), message)
}

// PrintWarning prints a warning message with yellow exclamation.
func PrintWarning(message string) {
	fmt.Fprintf(Output, "%s %s\n", Yellow("⚠"), message)
}

// PrintInfo prints an info message with blue dot.
func PrintInfo(message string) {
	fmt.Fprintf(Output, "%s %s\n", Blue("•"), message)
}
