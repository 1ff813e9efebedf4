package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"mipscore/internal/bus"
	"mipscore/internal/cli"
	"mipscore/internal/cpu"
	"mipscore/internal/firmware"
	"mipscore/internal/log"
)

// Tracer runs a BIOS image while printing a disassembled trace of every instruction executed.
//
//	mipscore trace bios.bin
func Tracer() cli.Command {
	return &tracer{log: log.DefaultLogger()}
}

type tracer struct {
	timeout time.Duration
	limit   int

	log *log.Logger
}

func (tracer) Description() string {
	return "run a BIOS image, printing a disassembled instruction trace"
}

func (tracer) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `trace [-limit N] [-timeout duration] bios.bin

Steps the processor, printing the program counter and disassembled instruction before each step.`)

	return err
}

func (t *tracer) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	fs.IntVar(&t.limit, "limit", 1000, "maximum instructions to trace")
	fs.DurationVar(&t.timeout, "timeout", 5*time.Second, "maximum run `duration`")

	return fs
}

func (t *tracer) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "trace: expected exactly one BIOS image argument")
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

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	for i := 0; i < t.limit; i++ {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(stdout, "trace: timed out")
			return 2
		}

		word, rerr := b.Read32(uint32(proc.PC))
		if rerr == nil {
			fmt.Fprintf(stdout, "%s  %s\n", proc.PC, cpu.Disassemble(cpu.Instruction(word)))
		}

		if err := proc.Step(); err != nil {
			if errors.Is(err, cpu.ErrHalted) {
				fmt.Fprintln(stdout, "trace: halted")
				return 0
			}

			fmt.Fprintf(stdout, "trace: trap: %s\n", err)

			return 1
		}
	}

	fmt.Fprintln(stdout, "trace: instruction limit reached")

	return 0
}
