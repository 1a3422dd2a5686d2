package uart

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/moffa90/go-fortelion/protocol"
)

// DefaultTimeout is the read timeout used when none is configured.
const DefaultTimeout = time.Second

// ErrTimeout is returned by Read when no byte arrived within the read timeout.
var ErrTimeout = errors.New("uart: read timed out")

// OpenError reports a serial device that could not be opened or configured.
type OpenError struct {
	Device string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("uart: failed to open %s: %v", e.Device, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Mode returns the fixed line settings of the battery module link:
// 38400 baud, 8 data bits, even parity, 1 stop bit.
func Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: protocol.BaudRate,
		DataBits: protocol.DataBits,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
}

// Port is a serial link to one battery module.
//
// It implements io.ReadWriteCloser. Unlike the underlying driver, Read never
// returns (0, nil): a read that times out without data returns ErrTimeout,
// so io.ReadFull over a silent device fails instead of spinning.
type Port struct {
	device string
	rwc    io.ReadWriteCloser
}

// Open opens device with the module line settings and the given read
// timeout. A timeout of zero selects DefaultTimeout.
func Open(device string, timeout time.Duration) (*Port, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	sp, err := serial.Open(device, Mode())
	if err != nil {
		return nil, &OpenError{Device: device, Err: err}
	}

	if err := sp.SetReadTimeout(timeout); err != nil {
		sp.Close()
		return nil, &OpenError{Device: device, Err: fmt.Errorf("set read timeout: %w", err)}
	}

	return NewPort(device, sp), nil
}

// NewPort wraps an already open stream, e.g. a pseudo terminal or a test
// double, as a Port.
func NewPort(device string, rwc io.ReadWriteCloser) *Port {
	return &Port{device: device, rwc: rwc}
}

// Device returns the device path the port was opened with.
func (p *Port) Device() string {
	return p.device
}

func (p *Port) Read(b []byte) (int, error) {
	n, err := p.rwc.Read(b)
	if n == 0 && err == nil && len(b) > 0 {
		return 0, ErrTimeout
	}
	return n, err
}

func (p *Port) Write(b []byte) (int, error) {
	return p.rwc.Write(b)
}

func (p *Port) Close() error {
	return p.rwc.Close()
}

// ResetInputBuffer discards bytes received but not yet read. It is a no-op
// when the underlying stream has no input buffer.
func (p *Port) ResetInputBuffer() error {
	if r, ok := p.rwc.(interface{ ResetInputBuffer() error }); ok {
		return r.ResetInputBuffer()
	}
	return nil
}

// ListDevices returns the serial devices present on the system.
func ListDevices() ([]string, error) {
	return serial.GetPortsList()
}
