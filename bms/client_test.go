package bms

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/moffa90/go-fortelion/bms/bmstest"
	"github.com/moffa90/go-fortelion/fault"
	"github.com/moffa90/go-fortelion/protocol"
)

// Mock logger for testing
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

// scriptedDevice returns fixed bytes regardless of the request.
type scriptedDevice struct {
	response *bytes.Reader
	written  bytes.Buffer
}

func newScriptedDevice(response []byte) *scriptedDevice {
	return &scriptedDevice{response: bytes.NewReader(response)}
}

func (d *scriptedDevice) Read(p []byte) (int, error) {
	return d.response.Read(p)
}

func (d *scriptedDevice) Write(p []byte) (int, error) {
	return d.written.Write(p)
}

func TestNewPanicsOnNilDevice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestQueryCurrent(t *testing.T) {
	dev := newScriptedDevice([]byte{0x02, 0x01, 0x03, 0x02, 0x04, 0xD2, 0xD4, 0x00})
	client := New(dev)

	view, err := client.Read(context.Background(), protocol.CmdCurrent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []byte{0x05, 0x01, 0x03, 0x00, 0x07}; !bytes.Equal(dev.written.Bytes(), want) {
		t.Errorf("request = % X, want % X", dev.written.Bytes(), want)
	}

	current, err := view.Current()
	if err != nil || current != 1234 {
		t.Errorf("Current() = %d, %v, want 1234", current, err)
	}
}

func TestQueryErrors(t *testing.T) {
	writeFailure := errors.New("device unplugged")

	tests := []struct {
		name   string
		setup  func(d *bmstest.Device)
		check  func(t *testing.T, err error)
		errMsg string
	}{
		{
			name:  "write failure",
			setup: func(d *bmstest.Device) { d.WriteErr = writeFailure },
			check: func(t *testing.T, err error) {
				var se *SendError
				if !errors.As(err, &se) {
					t.Fatalf("error type = %T, want *SendError", err)
				}
				if !errors.Is(err, writeFailure) {
					t.Error("SendError does not unwrap to the write error")
				}
			},
			errMsg: "failed to send",
		},
		{
			name:  "no response",
			setup: func(d *bmstest.Device) { d.Silent = true },
			check: func(t *testing.T, err error) {
				var re *ReceiveError
				if !errors.As(err, &re) {
					t.Fatalf("error type = %T, want *ReceiveError", err)
				}
				if re.Received != 0 || re.Expected != 56 {
					t.Errorf("Received/Expected = %d/%d, want 0/56", re.Received, re.Expected)
				}
				if !errors.Is(err, io.EOF) {
					t.Errorf("ReceiveError does not unwrap to io.EOF: %v", re.Err)
				}
			},
			errMsg: "failed to receive",
		},
		{
			name: "corrupt checksum",
			setup: func(d *bmstest.Device) {
				d.Mutate = func(frame []byte) { frame[len(frame)-2] ^= 0xFF }
			},
			check: func(t *testing.T, err error) {
				var fe *protocol.FrameError
				if !errors.As(err, &fe) {
					t.Fatalf("error type = %T, want *protocol.FrameError", err)
				}
				if fe.Rule != protocol.RuleChecksum {
					t.Errorf("Rule = %s, want %s", fe.Rule, protocol.RuleChecksum)
				}
			},
			errMsg: "invalid checksum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := bmstest.NewDevice(bmstest.DefaultState())
			tt.setup(dev)

			var exchanges []Exchange
			logger := &MockLogger{}
			client := New(dev,
				WithLogger(logger),
				WithExchangeCallback(func(x Exchange) { exchanges = append(exchanges, x) }),
			)

			frame, err := client.Query(context.Background(), protocol.CmdSummaryData)
			if frame != nil {
				t.Error("frame returned on failure")
			}
			tt.check(t, err)
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}

			if len(exchanges) != 1 || exchanges[0].Err == nil {
				t.Errorf("exchanges = %+v, want one failed exchange", exchanges)
			}
			if len(logger.errorMsgs) != 1 {
				t.Errorf("error logs = %v, want 1", logger.errorMsgs)
			}
		})
	}
}

func TestQueryTruncatedResponse(t *testing.T) {
	dev := newScriptedDevice([]byte{0x02, 0x01, 0x03, 0x02, 0x04})
	client := New(dev)

	_, err := client.Query(context.Background(), protocol.CmdCurrent)

	var re *ReceiveError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *ReceiveError", err)
	}
	if re.Received != 5 || re.Expected != 8 {
		t.Errorf("Received/Expected = %d/%d, want 5/8", re.Received, re.Expected)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReceiveError does not unwrap to io.ErrUnexpectedEOF: %v", re.Err)
	}
	if !strings.Contains(err.Error(), "got 5 of 8 bytes") {
		t.Errorf("error = %v", err)
	}
}

func TestQueryRejectsInvalidCommand(t *testing.T) {
	dev := bmstest.NewDevice(bmstest.DefaultState())
	client := New(dev)

	if _, err := client.Query(context.Background(), protocol.Command(0x99)); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if len(dev.Requests()) != 0 {
		t.Error("request sent for unknown command")
	}
}

func TestQueryCancelled(t *testing.T) {
	dev := bmstest.NewDevice(bmstest.DefaultState())
	client := New(dev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Query(ctx, protocol.CmdCurrent)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(dev.Requests()) != 0 {
		t.Error("request sent after cancellation")
	}
}

func TestQueryDiscardsStaleInput(t *testing.T) {
	dev := bmstest.NewDevice(bmstest.DefaultState())
	client := New(dev)

	// leave an unread response on the line
	if _, err := dev.Write([]byte{0x05, 0x01, 0x01, 0x00, 0x05}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := client.Read(context.Background(), protocol.CmdStateOfHealth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	soh, err := view.StateOfHealth()
	if err != nil || soh != 96 {
		t.Errorf("StateOfHealth() = %d, %v, want 96", soh, err)
	}
}

func TestExchangeCallback(t *testing.T) {
	dev := bmstest.NewDevice(bmstest.DefaultState())

	var got []Exchange
	logger := &MockLogger{}
	client := New(dev,
		WithLogger(logger),
		WithCommandDelay(time.Millisecond),
		WithExchangeCallback(func(x Exchange) { got = append(got, x) }),
	)

	for _, cmd := range protocol.Commands() {
		if _, err := client.Query(context.Background(), cmd); err != nil {
			t.Fatalf("Query(%s) error = %v", cmd, err)
		}
	}

	if len(got) != len(protocol.Commands()) {
		t.Fatalf("callback called %d times, want %d", len(got), len(protocol.Commands()))
	}
	for i, x := range got {
		cmd := protocol.Commands()[i]
		if x.Command != cmd || x.Err != nil {
			t.Errorf("exchange %d = %s (%v), want %s", i, x.Command, x.Err, cmd)
		}
		if len(x.Request) != protocol.CommandFrameSize {
			t.Errorf("exchange %d request = % X", i, x.Request)
		}
		if len(x.Response) != protocol.DataFrameOverhead+cmd.DataLength() {
			t.Errorf("exchange %d response length = %d", i, len(x.Response))
		}
		if x.Elapsed < time.Millisecond {
			t.Errorf("exchange %d elapsed = %s, want at least the command delay", i, x.Elapsed)
		}
	}

	if len(logger.debugMsgs) != len(got) {
		t.Errorf("debug logs = %d, want %d", len(logger.debugMsgs), len(got))
	}
}

func TestWithCommandDelayIgnoresNegative(t *testing.T) {
	cfg := defaultConfig()
	WithCommandDelay(-time.Second)(&cfg)
	if cfg.CommandDelay != 0 {
		t.Errorf("CommandDelay = %s, want 0", cfg.CommandDelay)
	}
}

func TestSnapshot(t *testing.T) {
	state := bmstest.DefaultState()
	state.FailStatus2 = 0x40
	state.FailStatus3 = 0x01
	dev := bmstest.NewDevice(state)
	logger := &MockLogger{}
	client := New(dev, WithLogger(logger))

	snap, err := client.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.CellVoltages) != protocol.NumberOfCells || snap.CellVoltages[3] != 3305 {
		t.Errorf("CellVoltages = %v", snap.CellVoltages)
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"ModuleVoltage", snap.ModuleVoltage, 26416},
		{"RemainingCapacity", snap.RemainingCapacity, 31000},
		{"FullChargeCapacity", snap.FullChargeCapacity, 48000},
		{"DesignCapacity", snap.DesignCapacity, 50000},
		{"AbsoluteStateOfCharge", snap.AbsoluteStateOfCharge, 62},
		{"RelativeStateOfCharge", snap.RelativeStateOfCharge, 64},
		{"StateOfHealth", snap.StateOfHealth, 96},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if snap.Current != -1520 {
		t.Errorf("Current = %d, want -1520", snap.Current)
	}
	if snap.MaxTemperature < 24.59 || snap.MaxTemperature > 24.61 {
		t.Errorf("MaxTemperature = %v, want 24.6", snap.MaxTemperature)
	}
	if snap.MinTemperature < 22.09 || snap.MinTemperature > 22.11 {
		t.Errorf("MinTemperature = %v, want 22.1", snap.MinTemperature)
	}

	if len(snap.Faults) != fault.NumItems {
		t.Fatalf("Faults has %d readings, want %d", len(snap.Faults), fault.NumItems)
	}
	active := snap.ActiveFaults()
	if len(active) != 2 || active[0] != fault.FuseBlown || active[1] != fault.SelfTestClockFail {
		t.Errorf("ActiveFaults() = %v, want [fuse-blown self-test-clock-fail]", active)
	}

	requests := dev.Requests()
	if len(requests) != 2 || requests[0][2] != 0x20 || requests[1][2] != 0x10 {
		t.Errorf("requests = % X, want summary then bm information", requests)
	}

	if len(logger.infoMsgs) != 1 {
		t.Errorf("info logs = %v, want one snapshot entry", logger.infoMsgs)
	}
}

func TestSnapshotPropagatesErrors(t *testing.T) {
	dev := bmstest.NewDevice(bmstest.DefaultState())
	dev.Silent = true

	_, err := New(dev).Snapshot(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read summary data") {
		t.Errorf("error = %v, want substring %q", err, "read summary data")
	}

	var re *ReceiveError
	if !errors.As(err, &re) {
		t.Errorf("error does not wrap *ReceiveError: %v", err)
	}
}
