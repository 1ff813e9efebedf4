package cpu

// ops_special.go implements the two explicit trap instructions. Both simply raise their documented
// exception code; the minimal exception contract (Non-goals, §1) is to halt with a diagnostic,
// same as every other trap in errors.go.

const (
	functSyscall = 0x0C
	functBreak   = 0x0D
)

func init() {
	registerSecondary(functSyscall, opSyscall)
	registerSecondary(functBreak, opBreak)
}

func opSyscall(c *CPU, ir Instruction) {
	c.raise(CauseSyscall, ErrSyscall)
}

func opBreak(c *CPU, ir Instruction) {
	c.raise(CauseBreak, ErrBreak)
}
