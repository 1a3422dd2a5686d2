package main

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/protocol"
	"github.com/moffa90/go-fortelion/uart"
)

// Exit codes for CLI commands.
const (
	exitSuccess     = 0
	exitError       = 1
	exitUsage       = 2
	exitConfig      = 3
	exitOpenFailed  = 4
	exitNoResponse  = 5
	exitBadResponse = 6
)

// ExitError represents an error that should cause the process to exit with a specific code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func errConfig(err error) *ExitError {
	return &ExitError{
		Code:    exitConfig,
		Message: fmt.Sprintf("Invalid configuration: %v", err),
	}
}

func errOpenFailed(device string) *ExitError {
	return &ExitError{
		Code:    exitOpenFailed,
		Message: fmt.Sprintf("Cannot open '%s'.\nRun: fortelion devices", device),
	}
}

func errNoResponse(device string, err error) *ExitError {
	return &ExitError{
		Code:    exitNoResponse,
		Message: fmt.Sprintf("No response from the module on '%s': %v", device, err),
	}
}

func errBadResponse(err error) *ExitError {
	return &ExitError{
		Code:    exitBadResponse,
		Message: fmt.Sprintf("Malformed response: %v", err),
	}
}

func errUnknownCommand(name string) *ExitError {
	return &ExitError{
		Code:    exitUsage,
		Message: fmt.Sprintf("Unknown command '%s'.", name),
	}
}

// mapDeviceError converts transport and protocol errors to user-facing
// exit errors. Anything else is returned unchanged.
func mapDeviceError(err error, device string) error {
	var openErr *uart.OpenError
	var sendErr *bms.SendError
	var recvErr *bms.ReceiveError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &openErr):
		return errOpenFailed(openErr.Device)
	case errors.As(err, &sendErr), errors.As(err, &recvErr):
		return errNoResponse(device, err)
	case protocol.IsFrameError(err):
		return errBadResponse(err)
	}
	return err
}
