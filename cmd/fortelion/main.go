package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"
)

var (
	version = "dev"
	commit  = "none"
)

// Globals are the flags shared by every command. Zero values leave the
// configured setting in place.
type Globals struct {
	Config   string        `help:"Config file (default: user config dir)" type:"path" placeholder:"PATH"`
	Device   string        `short:"d" help:"Serial device of the battery module" placeholder:"DEV" predictor:"device"`
	Timeout  time.Duration `help:"Read timeout per exchange" placeholder:"DUR"`
	LogLevel string        `help:"Log level (trace, debug, info, warn, error)" placeholder:"LEVEL"`
	LogFile  string        `help:"Also write JSON logs to this file" type:"path" placeholder:"PATH"`
}

type CLI struct {
	Globals

	Read    ReadCmd    `cmd:"" help:"Read a full snapshot of the battery module"`
	Faults  FaultsCmd  `cmd:"" help:"Show fault states"`
	Query   QueryCmd   `cmd:"" help:"Send one command and decode the response"`
	Export  ExportCmd  `cmd:"" help:"Poll the module and serve Prometheus metrics"`
	Devices DevicesCmd `cmd:"" help:"List serial devices"`
	Version VersionCmd `cmd:"" help:"Show version"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("fortelion"),
		kong.Description("Read Fortelion battery modules over UART"),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	kongplete.Complete(parser,
		kongplete.WithPredictor("command", newCommandPredictor()),
		kongplete.WithPredictor("device", newDevicePredictor()),
	)

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return exitUsage
	}

	if err := ctx.Run(&cli.Globals); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitSuccess
}
