package cpu

// errors.go models the exception kinds this core raises. Full exception delivery is out of scope
// (Non-goals); until it exists, every trap halts the machine with a diagnostic, following the
// policy table in the instruction set's error handling design.

import (
	"errors"
	"fmt"
)

// Coprocessor-0 exception codes, written into CP0.Cause and reported on a Trap.
const (
	CauseAddressErrorLoad  = 4
	CauseAddressErrorStore = 5
	CauseSyscall           = 8
	CauseBreak             = 9
	CauseReservedInstr     = 10
	CauseOverflow          = 12
)

var (
	// ErrHalted is returned by Step when the CPU has already halted on a prior trap.
	ErrHalted = errors.New("cpu: halted")

	// ErrReservedInstruction is wrapped by a Trap raised from dispatch to the default handler.
	ErrReservedInstruction = errors.New("cpu: reserved instruction")

	// ErrIntegerOverflow is wrapped by a Trap raised by a trapping arithmetic instruction.
	ErrIntegerOverflow = errors.New("cpu: integer overflow")

	// ErrSyscall and ErrBreak are wrapped by a Trap raised by the explicit SYSCALL/BREAK instructions.
	ErrSyscall = errors.New("cpu: syscall")
	ErrBreak   = errors.New("cpu: break")
)

// Trap carries a coprocessor-0 exception code and the faulting instruction's address. It wraps the
// specific sentinel for the condition so callers can use errors.Is/errors.As.
type Trap struct {
	Code int
	PC   Word
	IR   Instruction
	Err  error
}

func (t *Trap) Error() string {
	return fmt.Sprintf("trap: code %d at %s (%s): %s", t.Code, t.PC, t.IR, t.Err)
}

func (t *Trap) Unwrap() error { return t.Err }

// raise records a trap on the CPU and halts it. Until exception delivery is implemented (Non-goal
// beyond the minimum needed for reserved-instruction trapping), this is the entire policy: halt
// with a diagnostic, matching every row of the error-kind table.
func (c *CPU) raise(code int, err error) {
	trap := &Trap{Code: code, PC: c.PC, IR: c.IR, Err: err}

	c.CP0.Cause = Word(code << 2)
	c.CP0.EPC = c.PC

	c.Halted = true
	c.Cause = trap

	c.log.Error("trap", "code", code, "pc", c.PC, "ir", c.IR, "err", err)
}
