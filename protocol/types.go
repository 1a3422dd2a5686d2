package protocol

import (
	"fmt"
	"strings"
)

// Command is a request/response command code understood by the battery module.
// The response to a command carries the same code and a payload whose length
// is fixed per command.
type Command byte

// Command codes per the Fortelion UART specification.
const (
	// CmdFailStatus1 reports fail status register 1
	CmdFailStatus1 Command = 0x01

	// CmdCellVoltage reports the voltage of each cell
	CmdCellVoltage Command = 0x02

	// CmdCurrent reports the module current
	CmdCurrent Command = 0x03

	// CmdTemperature reports the module temperature
	CmdTemperature Command = 0x04

	// CmdRemainingCapacity reports the remaining capacity
	CmdRemainingCapacity Command = 0x05

	// CmdBMInformation reports the combined battery module information block
	CmdBMInformation Command = 0x10

	// CmdFullChargeCapacity reports the current full charge capacity
	CmdFullChargeCapacity Command = 0x11

	// CmdFailStatus2 reports fail status register 2
	CmdFailStatus2 Command = 0x13

	// CmdStateOfHealth reports the state of health
	CmdStateOfHealth Command = 0x14

	// CmdSummaryData reports the summary block
	CmdSummaryData Command = 0x20

	// CmdVersionInformation reports the firmware version information
	CmdVersionInformation Command = 0x50

	// CmdDesignCapacity reports the design capacity
	CmdDesignCapacity Command = 0x55
)

type commandInfo struct {
	name string

	// dataLength is the number of payload bytes in the response frame
	dataLength int

	// requestDataLength is the number of payload bytes in the request frame
	requestDataLength int
}

// catalog is indexed by command code. Every command lives here and nowhere else.
var catalog = map[Command]commandInfo{
	CmdFailStatus1:        {name: "fail-status-1", dataLength: 1},
	CmdCellVoltage:        {name: "cell-voltage", dataLength: 16},
	CmdCurrent:            {name: "current", dataLength: 2},
	CmdTemperature:        {name: "temperature", dataLength: 2},
	CmdRemainingCapacity:  {name: "remaining-capacity", dataLength: 2},
	CmdBMInformation:      {name: "bm-information", dataLength: 29},
	CmdFullChargeCapacity: {name: "full-charge-capacity", dataLength: 2},
	CmdFailStatus2:        {name: "fail-status-2", dataLength: 1},
	CmdStateOfHealth:      {name: "state-of-health", dataLength: 1},
	CmdSummaryData:        {name: "summary-data", dataLength: 50},
	CmdVersionInformation: {name: "version-information", dataLength: 3},
	CmdDesignCapacity:     {name: "design-capacity", dataLength: 2},
}

// commandOrder lists every command in ascending code order.
var commandOrder = []Command{
	CmdFailStatus1,
	CmdCellVoltage,
	CmdCurrent,
	CmdTemperature,
	CmdRemainingCapacity,
	CmdBMInformation,
	CmdFullChargeCapacity,
	CmdFailStatus2,
	CmdStateOfHealth,
	CmdSummaryData,
	CmdVersionInformation,
	CmdDesignCapacity,
}

// Commands returns every supported command in ascending code order.
func Commands() []Command {
	out := make([]Command, len(commandOrder))
	copy(out, commandOrder)
	return out
}

// Code returns the one-byte wire code of the command.
func (c Command) Code() byte {
	return byte(c)
}

// Valid reports whether c is one of the supported commands.
func (c Command) Valid() bool {
	_, ok := catalog[c]
	return ok
}

// DataLength returns the number of payload bytes in the response to c.
// It returns 0 for unsupported commands.
func (c Command) DataLength() int {
	return catalog[c].dataLength
}

// RequestDataLength returns the number of payload bytes the request for c carries.
// It is 0 for every currently supported command.
func (c Command) RequestDataLength() int {
	return catalog[c].requestDataLength
}

// Name returns the short kebab-case name of the command, e.g. "summary-data".
func (c Command) Name() string {
	if info, ok := catalog[c]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown-0x%02x", byte(c))
}

func (c Command) String() string {
	return fmt.Sprintf("%s(0x%02X)", c.Name(), byte(c))
}

// ParseCommand returns the command with the given wire code.
func ParseCommand(code byte) (Command, error) {
	c := Command(code)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown command code 0x%02X", code)
	}
	return c, nil
}

// CommandByName returns the command with the given name (see Command.Name).
// Matching is case-insensitive and accepts underscores in place of dashes.
func CommandByName(name string) (Command, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, c := range commandOrder {
		if catalog[c].name == normalized {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// VersionInfo is the raw payload of a version information response.
type VersionInfo [3]byte

func (v VersionInfo) String() string {
	return fmt.Sprintf("%02X.%02X.%02X", v[0], v[1], v[2])
}
