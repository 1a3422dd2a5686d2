package bmstest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/moffa90/go-fortelion/protocol"
)

func request(cmd protocol.Command) []byte {
	frame, err := protocol.BuildCommandFrame(cmd)
	if err != nil {
		panic(err)
	}
	return frame
}

func TestDeviceAnswersEveryCommand(t *testing.T) {
	dev := NewDevice(DefaultState())

	for _, cmd := range protocol.Commands() {
		t.Run(cmd.Name(), func(t *testing.T) {
			if _, err := dev.Write(request(cmd)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			frame := protocol.NewDataFrame(cmd)
			if _, err := io.ReadFull(dev, frame.Bytes()); err != nil {
				t.Fatalf("ReadFull() error = %v", err)
			}
			if err := frame.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestDeviceRoundTripsState(t *testing.T) {
	dev := NewDevice(DefaultState())
	dev.Write(request(protocol.CmdSummaryData))

	frame := protocol.NewDataFrame(protocol.CmdSummaryData)
	if _, err := io.ReadFull(dev, frame.Bytes()); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	view, err := protocol.NewFrameView(frame)
	if err != nil {
		t.Fatalf("NewFrameView() error = %v", err)
	}

	if soc, _ := view.AbsoluteStateOfCharge(); soc != 62 {
		t.Errorf("AbsoluteStateOfCharge() = %d, want 62", soc)
	}
	if soc, _ := view.RelativeStateOfCharge(); soc != 64 {
		t.Errorf("RelativeStateOfCharge() = %d, want 64", soc)
	}
	if mv, _ := view.ModuleVoltage(); mv != 26416 {
		t.Errorf("ModuleVoltage() = %d, want 26416", mv)
	}
}

func TestDeviceIgnoresMalformedRequests(t *testing.T) {
	tests := []struct {
		name    string
		request []byte
	}{
		{"bad start code", []byte{0x02, 0x01, 0x03, 0x00, 0x00}},
		{"bad leader", []byte{0x05, 0x02, 0x03, 0x00, 0x04}},
		{"bad checksum", []byte{0x05, 0x01, 0x03, 0x00, 0xFF}},
		{"unknown command", []byte{0x05, 0x01, 0x42, 0x00, 0x46}},
		{"short frame", []byte{0x05, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := NewDevice(DefaultState())
			n, err := dev.Write(tt.request)
			if err != nil || n != len(tt.request) {
				t.Fatalf("Write() = %d, %v", n, err)
			}

			buf := make([]byte, 1)
			if _, err := dev.Read(buf); err != io.EOF {
				t.Errorf("Read() error = %v, want io.EOF", err)
			}
			if len(dev.Requests()) != 1 {
				t.Errorf("Requests() = %d, want 1", len(dev.Requests()))
			}
		})
	}
}

func TestDeviceFailureModes(t *testing.T) {
	dev := NewDevice(DefaultState())

	dev.Mutate = func(frame []byte) { frame[0] = 0x00 }
	dev.Write(request(protocol.CmdCurrent))
	got := make([]byte, 8)
	io.ReadFull(dev, got)
	if got[0] != 0x00 {
		t.Errorf("Mutate not applied: % X", got)
	}

	dev.Mutate = nil
	dev.Write(request(protocol.CmdCurrent))
	if err := dev.ResetInputBuffer(); err != nil {
		t.Fatalf("ResetInputBuffer() error = %v", err)
	}
	if _, err := dev.Read(got); err != io.EOF {
		t.Errorf("Read() after reset = %v, want io.EOF", err)
	}

	boom := errors.New("boom")
	dev.WriteErr = boom
	if _, err := dev.Write(request(protocol.CmdCurrent)); !errors.Is(err, boom) {
		t.Errorf("Write() error = %v, want boom", err)
	}

	dev.Close()
	if _, err := dev.Read(got); err != io.ErrClosedPipe {
		t.Errorf("Read() after Close = %v, want io.ErrClosedPipe", err)
	}
}

func TestFrame(t *testing.T) {
	got := Frame(protocol.CmdCurrent, []byte{0x04, 0xD2})
	want := []byte{0x02, 0x01, 0x03, 0x02, 0x04, 0xD2, 0xD4, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Frame() = % X, want % X", got, want)
	}
}

func TestSetState(t *testing.T) {
	dev := NewDevice(DefaultState())
	s := DefaultState()
	s.StateOfHealth = 42
	dev.SetState(s)

	dev.Write(request(protocol.CmdStateOfHealth))
	frame := protocol.NewDataFrame(protocol.CmdStateOfHealth)
	io.ReadFull(dev, frame.Bytes())
	if frame.Payload()[0] != 42 {
		t.Errorf("state of health = %d, want 42", frame.Payload()[0])
	}
}
