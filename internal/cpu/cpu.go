// Package cpu interprets a 32-bit little-endian MIPS-I-class instruction stream against a
// mipscore/internal/bus.Bus, honoring the branch-delay-slot and load-delay-slot semantics visible
// to software.
package cpu

import (
	"context"
	"errors"
	"fmt"

	"mipscore/internal/bus"
	"mipscore/internal/log"
)

// ResetVector is the address execution begins at: the BIOS ROM's base address seen through the
// KSEG1 mirror.
const ResetVector Word = 0xBFC00000

// pendingLoad is the single-slot load-delay bookkeeping described by the instruction set: a memory
// load schedules a register write here instead of performing it immediately, and the CPU commits it
// one instruction later, discarding it if it's overwritten first.
type pendingLoad struct {
	valid bool
	dest  uint
	value Word
}

// CPU holds all processor-visible state: the general-purpose register file, the dual program
// counters that realize the branch delay slot, HI/LO, the system-control registers, and the single
// pending-load slot.
type CPU struct {
	PC     Word
	NextPC Word

	Reg Registers
	HI  Word
	LO  Word

	CP0 CP0

	IR Instruction

	pending pendingLoad

	Bus *bus.Bus

	// Halted is true once a trap has fired. Stepping a halted CPU returns ErrHalted.
	Halted bool

	// Cause holds the trap that halted the CPU, or nil.
	Cause error

	log *log.Logger
}

// OptionFn configures a CPU during construction.
type OptionFn func(*CPU) error

// WithLogger installs a logger on the CPU.
func WithLogger(l *log.Logger) OptionFn {
	return func(c *CPU) error {
		c.log = l
		return nil
	}
}

// WithPC overrides the initial program counter, mostly useful in tests that don't want to depend
// on a full BIOS image being loaded at the reset vector.
func WithPC(pc Word) OptionFn {
	return func(c *CPU) error {
		c.PC = pc
		c.NextPC = pc + 4

		return nil
	}
}

// New creates a CPU wired to the given bus, with the register file and program counters in their
// documented initial state: all zero except PC, which starts at the reset vector, and NextPC, which
// leads it by one instruction.
func New(b *bus.Bus, opts ...OptionFn) (*CPU, error) {
	c := &CPU{
		PC:     ResetVector,
		NextPC: ResetVector + 4,
		Bus:    b,
		log:    log.DefaultLogger(),
	}

	for _, fn := range opts {
		if err := fn(c); err != nil {
			return nil, fmt.Errorf("cpu: %w", err)
		}
	}

	return c, nil
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC:%s NEXT_PC:%s HI:%s LO:%s %s", c.PC, c.NextPC, c.HI, c.LO, c.CP0)
}

// Run steps the CPU until it halts or ctx is cancelled.
func (c *CPU) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Step fetches, decodes, and executes one instruction to completion. A step always runs to
// completion: there is no mid-step cancellation and no suspension point within it.
func (c *CPU) Step() error {
	if c.Halted {
		return fmt.Errorf("cpu: %w", ErrHalted)
	}

	word, err := c.Bus.Read32(uint32(c.PC))
	if err != nil {
		var addrErr *bus.AddressError
		if errors.As(err, &addrErr) {
			c.raise(addrErr.Code(), err)
			return c.Cause
		}

		return fmt.Errorf("cpu: fetch: %w", err)
	}

	c.IR = Instruction(word)
	instrPC := c.PC

	// The dual-PC scheme: pc becomes the already-queued next instruction (the branch delay slot,
	// if the instruction about to execute is a branch or jump), and next_pc advances past it. A
	// taken branch/jump overwrites NextPC below, during execution; it never touches PC, so the
	// delay slot instruction always runs.
	c.PC, c.NextPC = c.NextPC, c.NextPC+4

	c.commitLoadDelay(func() {
		primaryTable[c.IR.Op()](c, c.IR)
	})

	if c.Cause != nil {
		// The handler ran with PC already advanced; report the trapping instruction's own address.
		if trap, ok := c.Cause.(*Trap); ok {
			trap.PC = instrPC
			c.CP0.EPC = instrPC
		}

		return c.Cause
	}

	c.log.Debug("executed", "ir", c.IR, "pc", c.PC)

	return nil
}

// commitLoadDelay implements the load-delay slot as a single committed-at-the-boundary slot:
// whatever was scheduled by the previous instruction is set aside, the current instruction runs
// against the register file as it stood before that scheduled write, and only afterward -- if
// nothing this instruction did overwrote it -- does the loaded value land. A new load into the same
// register scheduled by this instruction, or a direct write to that register, discards the
// carried-over value: "overwrite wins" on collision.
func (c *CPU) commitLoadDelay(run func()) {
	carry := c.pending
	c.pending = pendingLoad{}

	var before Word
	if carry.valid {
		before = c.Reg.Get(carry.dest)
	}

	run()

	if !carry.valid {
		return
	}

	if c.pending.valid && c.pending.dest == carry.dest {
		return // this instruction scheduled its own load into the same register; the second one wins.
	}

	if c.Reg.Get(carry.dest) != before {
		return // this instruction wrote the register directly; that write wins.
	}

	c.Reg.Set(carry.dest, carry.value)
}

// scheduleLoad enqueues a delayed register write. Load instructions call this instead of writing
// Reg directly.
func (c *CPU) scheduleLoad(dest uint, value Word) {
	c.pending = pendingLoad{valid: true, dest: dest, value: value}
}
