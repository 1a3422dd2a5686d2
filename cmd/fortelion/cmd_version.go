package main

import (
	"fmt"

	"github.com/moffa90/go-fortelion/internal/ui"
)

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(ui.Output, "fortelion version %s (%s)\n", version, commit)
	return nil
}
