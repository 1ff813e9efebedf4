// Command mipscore is the command-line interface to the processor core: run, trace, and
// interactively watch BIOS images.
package main

import (
	"context"
	"os"

	"mipscore/internal/cli"
	"mipscore/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Runner(),
	cmd.Tracer(),
	cmd.Watcher(),
	cmd.Dumper(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
