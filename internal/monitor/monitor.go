// Package monitor implements an interactive register and memory inspector: a raw-mode terminal
// session that single-steps the processor one keystroke at a time and prints the machine state
// after each step, the way a hardware-debug monitor ROM would.
package monitor

import (
	"context"
	"fmt"
	"io"

	"mipscore/internal/bus"
	"mipscore/internal/cpu"
	"mipscore/internal/log"
	"mipscore/internal/tty"
)

// Monitor drives a CPU interactively: each keystroke on the console steps the processor once and
// prints its state. "q" exits the loop.
type Monitor struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	log *log.Logger
	out io.Writer
}

// OptionFn configures a Monitor during construction.
type OptionFn func(*Monitor)

// WithLogger installs a logger on the Monitor.
func WithLogger(l *log.Logger) OptionFn {
	return func(m *Monitor) { m.log = l }
}

// New creates a Monitor over the given CPU, writing state to out.
func New(c *cpu.CPU, out io.Writer, opts ...OptionFn) *Monitor {
	m := &Monitor{
		CPU: c,
		Bus: c.Bus,
		log: log.DefaultLogger(),
		out: out,
	}

	for _, fn := range opts {
		fn(m)
	}

	return m
}

// Watch opens a raw-mode console and steps the CPU once per keystroke until the console is closed,
// the CPU halts, or ctx is cancelled. Pressing "q" exits the loop without an error.
func (m *Monitor) Watch(ctx context.Context) error {
	ctx, console, cancel := tty.ConsoleContext(ctx)
	defer cancel()

	if console == nil {
		return context.Cause(ctx)
	}

	m.log.Info("monitor watch started", "pc", m.CPU.PC)

	fmt.Fprintln(m.out, "monitor: press any key to step, q to quit")
	m.printState()

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case key := <-console.Keys():
			if key == 'q' {
				return nil
			}

			word, err := m.Bus.Read32(uint32(m.CPU.PC))
			if err == nil {
				fmt.Fprintf(m.out, "%s  %s\r\n", m.CPU.PC, cpu.Disassemble(cpu.Instruction(word)))
			}

			if err := m.CPU.Step(); err != nil {
				fmt.Fprintf(m.out, "trap: %s\r\n", err)
				m.printState()

				return err
			}

			m.printState()
		}
	}
}

func (m *Monitor) printState() {
	fmt.Fprintf(m.out, "%s\r\n%s\r\n", m.CPU, m.CPU.Reg)
}
