package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroCapacity is returned when a state of charge is derived from a
// capacity of zero.
var ErrZeroCapacity = errors.New("fortelion: capacity is zero, state of charge is undefined")

// Rule identifies one structural check applied to a data frame.
type Rule int

// Validation rules, in the order they are checked.
const (
	RuleUnsupportedCommand Rule = iota + 1
	RuleStartCode
	RuleLeaderID
	RuleResponseCommand
	RuleDataLength
	RuleChecksum
)

func (r Rule) String() string {
	switch r {
	case RuleUnsupportedCommand:
		return "unsupported command"
	case RuleStartCode:
		return "invalid start code"
	case RuleLeaderID:
		return "invalid BM ID"
	case RuleResponseCommand:
		return "response command mismatch"
	case RuleDataLength:
		return "invalid number of data"
	case RuleChecksum:
		return "invalid checksum"
	default:
		return fmt.Sprintf("unknown rule %d", int(r))
	}
}

// FrameError reports a data frame that failed validation.
// The frame must be treated as unusable.
type FrameError struct {
	// Command is the response command the frame was expected to carry
	Command Command

	// Rule is the first check that failed
	Rule Rule

	// Expected is the byte the rule required
	Expected byte

	// Received is the byte found in the frame
	Received byte
}

func (e *FrameError) Error() string {
	if e.Rule == RuleUnsupportedCommand {
		return fmt.Sprintf("fortelion: invalid data frame for %s: %s", e.Command, e.Rule)
	}
	return fmt.Sprintf("fortelion: invalid data frame for %s: %s (must be 0x%02X, received 0x%02X)",
		e.Command, e.Rule, e.Expected, e.Received)
}

// IsFrameError returns true if err is or wraps a FrameError.
func IsFrameError(err error) bool {
	var fe *FrameError
	return errors.As(err, &fe)
}

// NoAppropriateDataError reports that a quantity was requested from a frame
// whose response command does not carry it. It indicates a caller mistake,
// not a device fault.
type NoAppropriateDataError struct {
	// Quantity is the name of the requested quantity
	Quantity string

	// Command is the response command of the frame
	Command Command

	// Accepted lists the commands that do carry the quantity
	Accepted []Command
}

func (e *NoAppropriateDataError) Error() string {
	names := make([]string, len(e.Accepted))
	for i, c := range e.Accepted {
		names[i] = c.String()
	}
	return fmt.Sprintf("fortelion: no appropriate data for %s: response command is %s, must be any of [%s]",
		e.Quantity, e.Command, strings.Join(names, ", "))
}

// IsNoAppropriateData returns true if err is or wraps a NoAppropriateDataError.
func IsNoAppropriateData(err error) bool {
	var ne *NoAppropriateDataError
	return errors.As(err, &ne)
}

// DataBytesShortageError reports that a byte window or integer decode ran
// past the end of the available payload.
type DataBytesShortageError struct {
	// What describes the value being extracted
	What string

	// Need is the number of bytes required
	Need int

	// Have is the number of bytes available
	Have int
}

func (e *DataBytesShortageError) Error() string {
	return fmt.Sprintf("fortelion: data bytes shortage: %s needs %d bytes, %d available", e.What, e.Need, e.Have)
}
