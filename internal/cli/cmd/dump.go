package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"mipscore/internal/bus"
	"mipscore/internal/cli"
	"mipscore/internal/firmware"
	"mipscore/internal/log"
)

// Dumper renders a raw BIOS image as Intel-Hex-style text for inspection or diffing.
//
//	mipscore dump bios.bin
func Dumper() cli.Command {
	return &dumper{log: log.DefaultLogger()}
}

type dumper struct {
	log *log.Logger
}

func (dumper) Description() string {
	return "render a raw BIOS image as Intel-Hex-style text"
}

func (dumper) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `dump bios.bin

Reads a raw BIOS image and writes it to stdout as Intel-Hex-style text, addressed from the BIOS
base.`)

	return err
}

func (dumper) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("dump", flag.ExitOnError)
}

func (d *dumper) Run(_ context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "dump: expected exactly one BIOS image argument")
		return 1
	}

	file, err := os.Open(args[0])
	if err != nil {
		logger.Error("error opening image", "err", err)
		return 1
	}
	defer file.Close()

	img, err := io.ReadAll(file)
	if err != nil {
		logger.Error("error reading image", "err", err)
		return 1
	}

	if err := firmware.Dump(stdout, bus.BIOSBase, img); err != nil {
		logger.Error("error dumping image", "err", err)
		return 1
	}

	return 0
}
