package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mipscore/internal/bus"
	"mipscore/internal/cli"
	"mipscore/internal/cpu"
	"mipscore/internal/firmware"
	"mipscore/internal/log"
)

// Runner runs a BIOS image against the processor core until it halts, traps, or a timeout elapses.
//
//	mipscore run bios.bin
func Runner() cli.Command {
	return &runner{log: log.DefaultLogger()}
}

type runner struct {
	logLevel slog.Level
	hex      bool
	timeout  time.Duration

	log *log.Logger
}

func (runner) Description() string {
	return "run a BIOS image"
}

func (runner) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run [-hex] [-timeout duration] bios.bin

Loads a BIOS image onto the bus and runs the processor from the reset vector until it halts,
traps, or the timeout elapses.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return r.logLevel.UnmarshalText([]byte(s))
	})
	fs.BoolVar(&r.hex, "hex", false, "decode the image as Intel-Hex-style text")
	fs.DurationVar(&r.timeout, "timeout", 10*time.Second, "maximum run `duration`")

	return fs
}

// Run executes the BIOS image named by args[0].
func (r *runner) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "run: expected exactly one BIOS image argument")
		return 1
	}

	log.LogLevel.Set(r.logLevel)

	b := bus.New(bus.WithLogger(logger))

	if err := r.loadImage(b, args[0]); err != nil {
		logger.Error("error loading image", "err", err)
		return 1
	}

	proc, err := cpu.New(b, cpu.WithLogger(logger))
	if err != nil {
		logger.Error("error creating processor", "err", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger.Info("starting processor", "pc", proc.PC)

	err = proc.Run(ctx)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("run timed out")
		return 2
	case err != nil:
		logger.Error("processor halted", "err", err, "pc", proc.PC)
		return 1
	default:
		logger.Info("processor stopped")
		return 0
	}
}

func (r *runner) loadImage(b *bus.Bus, fn string) error {
	r.log.Debug("loading image", "file", fn)

	file, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer file.Close()

	if r.hex {
		return firmware.LoadHex(b, file)
	}

	return firmware.Load(b, file)
}
