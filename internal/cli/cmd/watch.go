package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"mipscore/internal/bus"
	"mipscore/internal/cli"
	"mipscore/internal/cpu"
	"mipscore/internal/firmware"
	"mipscore/internal/log"
	"mipscore/internal/monitor"
)

// Watcher opens an interactive, raw-mode register and memory inspector over a BIOS image.
//
//	mipscore watch bios.bin
func Watcher() cli.Command {
	return &watcher{log: log.DefaultLogger()}
}

type watcher struct {
	log *log.Logger
}

func (watcher) Description() string {
	return "step a BIOS image interactively, one keystroke per instruction"
}

func (watcher) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `watch bios.bin

Opens the terminal in raw mode and steps the processor once per keystroke, printing registers
after each step. Requires a real terminal on stdin.`)

	return err
}

func (watcher) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("watch", flag.ExitOnError)
}

func (w *watcher) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "watch: expected exactly one BIOS image argument")
		return 1
	}

	b := bus.New(bus.WithLogger(logger))

	file, err := os.Open(args[0])
	if err != nil {
		logger.Error("error opening image", "err", err)
		return 1
	}
	defer file.Close()

	if err := firmware.Load(b, file); err != nil {
		logger.Error("error loading image", "err", err)
		return 1
	}

	proc, err := cpu.New(b, cpu.WithLogger(logger))
	if err != nil {
		logger.Error("error creating processor", "err", err)
		return 1
	}

	m := monitor.New(proc, stdout, monitor.WithLogger(logger))

	if err := m.Watch(ctx); err != nil {
		logger.Error("watch ended", "err", err)
		return 1
	}

	return 0
}
