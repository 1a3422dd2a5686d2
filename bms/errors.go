package bms

import (
	"fmt"

	"github.com/moffa90/go-fortelion/protocol"
)

// SendError indicates that a command frame could not be written to the device.
type SendError struct {
	Command protocol.Command
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send %s request: %v", e.Command, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// ReceiveError indicates that the device did not deliver a complete data
// frame, typically because the read timed out.
type ReceiveError struct {
	Command  protocol.Command
	Received int
	Expected int
	Err      error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("failed to receive %s response: got %d of %d bytes: %v",
		e.Command, e.Received, e.Expected, e.Err)
}

func (e *ReceiveError) Unwrap() error {
	return e.Err
}
