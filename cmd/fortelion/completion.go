package main

import (
	"fmt"
	"strings"

	"github.com/posener/complete"

	"github.com/moffa90/go-fortelion/protocol"
)

// newCommandPredictor completes protocol command names.
func newCommandPredictor() complete.Predictor {
	return complete.PredictFunc(func(args complete.Args) []string {
		return completeCommands(args.Last)
	})
}

// newDevicePredictor completes serial device paths.
func newDevicePredictor() complete.Predictor {
	return complete.PredictFunc(func(args complete.Args) []string {
		return completeDevices(args.Last)
	})
}

// completeCommands returns command names, or hex codes when partial starts
// with "0x".
func completeCommands(partial string) []string {
	hex := strings.HasPrefix(strings.ToLower(partial), "0x")

	var results []string
	for _, cmd := range protocol.Commands() {
		completion := cmd.Name()
		if hex {
			completion = fmt.Sprintf("0x%02X", cmd.Code())
		}
		if strings.HasPrefix(strings.ToLower(completion), strings.ToLower(partial)) {
			results = append(results, completion)
		}
	}
	return results
}

func completeDevices(partial string) []string {
	devices, err := listDevices()
	if err != nil {
		return nil
	}
	results := make([]string, 0, len(devices))
	for _, d := range devices {
		if strings.HasPrefix(d, partial) {
			results = append(results, d)
		}
	}
	return results
}
