// Package bmstest provides a simulated Fortelion battery module for tests
// and demos.
//
// A Device answers well-formed command frames with data frames encoded from
// a State, using the same layouts as the real module:
//
//	dev := bmstest.NewDevice(bmstest.DefaultState())
//	client := bms.New(dev)
//	snap, err := client.Snapshot(ctx)
package bmstest

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/moffa90/go-fortelion/protocol"
)

// State is the physical state the simulated module reports.
type State struct {
	CellVoltages [protocol.NumberOfCells]uint16 // mV

	Current        int16   // mA, positive is charge
	Temperature    float64 // °C, summary data reports it as the maximum
	MinTemperature float64 // °C

	RemainingCapacity  uint16 // mAh
	FullChargeCapacity uint16 // mAh
	DesignCapacity     uint16 // mAh
	StateOfHealth      byte   // %

	FailStatus1 byte
	FailStatus2 byte
	FailStatus3 byte

	Version [3]byte
}

// DefaultState returns a healthy, partly charged module with no faults.
func DefaultState() State {
	return State{
		CellVoltages:       [protocol.NumberOfCells]uint16{3301, 3302, 3300, 3305, 3299, 3303, 3304, 3302},
		Current:            -1520,
		Temperature:        24.6,
		MinTemperature:     22.1,
		RemainingCapacity:  31000,
		FullChargeCapacity: 48000,
		DesignCapacity:     50000,
		StateOfHealth:      96,
		Version:            [3]byte{0x01, 0x04, 0x02},
	}
}

// Device is an io.ReadWriteCloser that behaves like a battery module on
// the serial link. It is safe for concurrent use.
type Device struct {
	mu       sync.Mutex
	state    State
	pending  bytes.Buffer
	requests [][]byte
	closed   bool

	// Mutate, if set, is applied to every response frame before it is
	// queued, e.g. to corrupt a checksum.
	Mutate func(frame []byte)

	// Silent makes the device swallow requests without answering.
	Silent bool

	// WriteErr, if set, is returned by every Write.
	WriteErr error
}

// NewDevice creates a device reporting s.
func NewDevice(s State) *Device {
	return &Device{state: s}
}

// SetState replaces the reported state.
func (d *Device) SetState(s State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = s
}

// Requests returns a copy of every request frame written so far.
func (d *Device) Requests() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.requests))
	copy(out, d.requests)
	return out
}

// Write accepts one command frame and queues the matching data frame.
// Frames with a bad start code, leader ID or checksum and unknown commands
// are ignored, as the real module does.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, io.ErrClosedPipe
	}
	if d.WriteErr != nil {
		return 0, d.WriteErr
	}

	d.requests = append(d.requests, append([]byte(nil), p...))

	if d.Silent || len(p) != protocol.CommandFrameSize {
		return len(p), nil
	}
	if p[0] != protocol.CommandFrameStartCode || p[1] != protocol.LeaderID {
		return len(p), nil
	}
	if protocol.Checksum(p[:4]) != p[4] {
		return len(p), nil
	}

	cmd, err := protocol.ParseCommand(p[2])
	if err != nil {
		return len(p), nil
	}

	frame := Frame(cmd, d.state.Payload(cmd))
	if d.Mutate != nil {
		d.Mutate(frame)
	}
	d.pending.Write(frame)

	return len(p), nil
}

// Read returns queued response bytes, or io.EOF when nothing is queued.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, io.ErrClosedPipe
	}
	return d.pending.Read(p)
}

// ResetInputBuffer drops queued response bytes.
func (d *Device) ResetInputBuffer() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Reset()
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Frame builds a well-formed data frame for cmd carrying payload.
func Frame(cmd protocol.Command, payload []byte) []byte {
	frame := make([]byte, 0, protocol.DataFrameOverhead+len(payload))
	frame = append(frame, protocol.DataFrameStartCode, protocol.LeaderID, cmd.Code(), byte(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, protocol.Checksum(frame))
	frame = append(frame, 0x00) // reserved
	return frame
}

// Payload encodes s as the response payload of cmd.
func (s State) Payload(cmd protocol.Command) []byte {
	p := make([]byte, cmd.DataLength())

	switch cmd {
	case protocol.CmdFailStatus1:
		p[0] = s.FailStatus1
	case protocol.CmdCellVoltage:
		s.putCells(p, 0)
	case protocol.CmdCurrent:
		putInt16(p, 0, s.Current)
	case protocol.CmdTemperature:
		putInt16(p, 0, int16(math.Round(s.Temperature)))
	case protocol.CmdRemainingCapacity:
		putUint16(p, 0, s.RemainingCapacity)
	case protocol.CmdFullChargeCapacity:
		putUint16(p, 0, s.FullChargeCapacity)
	case protocol.CmdDesignCapacity:
		putUint16(p, 0, s.DesignCapacity)
	case protocol.CmdFailStatus2:
		p[0] = s.FailStatus2
	case protocol.CmdStateOfHealth:
		p[0] = s.StateOfHealth
	case protocol.CmdVersionInformation:
		copy(p, s.Version[:])
	case protocol.CmdBMInformation:
		p[0] = s.FailStatus1
		s.putCells(p, 1)
		putInt16(p, 17, s.Current/10)
		putInt16(p, 19, deciDegrees(s.Temperature))
		putUint16(p, 21, s.RemainingCapacity)
		putUint16(p, 23, s.FullChargeCapacity)
		putUint16(p, 25, s.DesignCapacity)
		p[27] = s.FailStatus2
		p[28] = s.StateOfHealth
	case protocol.CmdSummaryData:
		p[0] = s.FailStatus1
		p[2] = s.absoluteStateOfCharge()
		p[3] = s.relativeStateOfCharge()
		p[4] = s.StateOfHealth
		putInt16(p, 7, s.Current/10)
		putUint16(p, 11, s.moduleVoltage())
		p[13] = s.FailStatus2
		p[14] = s.FailStatus3
		putUint16(p, 17, s.DesignCapacity/10)
		putUint16(p, 19, s.FullChargeCapacity/10)
		putUint16(p, 21, s.RemainingCapacity/10)
		putInt16(p, 32, deciDegrees(s.Temperature))
		putInt16(p, 35, deciDegrees(s.MinTemperature))
	}

	return p
}

func (s State) putCells(p []byte, offset int) {
	for i, mv := range s.CellVoltages {
		putUint16(p, offset+2*i, mv)
	}
}

func (s State) moduleVoltage() uint16 {
	var sum uint16
	for _, mv := range s.CellVoltages {
		sum += mv
	}
	return sum
}

func (s State) absoluteStateOfCharge() byte {
	if s.DesignCapacity == 0 {
		return 0
	}
	return byte(math.Round(100 * float64(s.RemainingCapacity) / float64(s.DesignCapacity)))
}

func (s State) relativeStateOfCharge() byte {
	if s.FullChargeCapacity == 0 {
		return 0
	}
	return byte(100 * uint32(s.RemainingCapacity) / uint32(s.FullChargeCapacity))
}

func deciDegrees(c float64) int16 {
	return int16(math.Round(c * 10))
}

func putUint16(b []byte, offset int, v uint16) {
	binary.BigEndian.PutUint16(b[offset:], v)
}

func putInt16(b []byte, offset int, v int16) {
	binary.BigEndian.PutUint16(b[offset:], uint16(v))
}
