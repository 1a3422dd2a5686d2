package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/posener/complete"
)

func TestCompleteCommands(t *testing.T) {
	tests := []struct {
		name     string
		partial  string
		expected int
	}{
		{"no filter", "", 12},
		{"partial name", "s", 2},
		{"full name", "summary-data", 1},
		{"fail status", "fail", 2},
		{"no match", "xyz", 0},
		{"hex low codes", "0x0", 5},
		{"hex 0x1_", "0x1", 4},
		{"hex exact", "0X55", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := completeCommands(tt.partial)
			if len(results) != tt.expected {
				t.Errorf("expected %d results, got %d: %v", tt.expected, len(results), results)
			}
			for _, r := range results {
				if !strings.HasPrefix(strings.ToLower(r), strings.ToLower(tt.partial)) {
					t.Errorf("result %q does not match %q", r, tt.partial)
				}
			}
		})
	}
}

func TestCompleteCommandsAreParseable(t *testing.T) {
	for _, partial := range []string{"", "0x"} {
		for _, r := range completeCommands(partial) {
			if _, err := parseCommandArg(r); err != nil {
				t.Errorf("completion %q does not parse: %v", r, err)
			}
		}
	}
}

func TestCompleteDevices(t *testing.T) {
	old := listDevices
	t.Cleanup(func() { listDevices = old })

	listDevices = func() ([]string, error) {
		return []string{"/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyAMA0"}, nil
	}

	if got := completeDevices("/dev/ttyUSB"); len(got) != 2 {
		t.Errorf("completeDevices(/dev/ttyUSB) = %v", got)
	}
	if got := completeDevices(""); len(got) != 3 {
		t.Errorf("completeDevices(\"\") = %v", got)
	}

	p := newDevicePredictor()
	if got := p.Predict(complete.Args{Last: "/dev/ttyA"}); len(got) != 1 || got[0] != "/dev/ttyAMA0" {
		t.Errorf("Predict() = %v", got)
	}

	listDevices = func() ([]string, error) { return nil, errors.New("enumeration failed") }
	if got := completeDevices(""); len(got) != 0 {
		t.Errorf("expected no results on error, got %v", got)
	}
}

func TestCommandPredictor(t *testing.T) {
	p := newCommandPredictor()
	got := p.Predict(complete.Args{Last: "bm"})
	if len(got) != 1 || got[0] != "bm-information" {
		t.Errorf("Predict() = %v", got)
	}
}
