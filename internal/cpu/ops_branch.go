package cpu

// ops_branch.go implements every control-flow instruction: the unconditional jumps, the
// register-indirect jumps, the ordinary conditional branches, and the REGIMM family
// (BLTZ/BGEZ/BLTZAL/BGEZAL). None of these instructions skip the delay slot -- they only ever
// write NextPC, and the dual-PC scheme in Step already queued the delay-slot instruction to run
// before NextPC's target is fetched.

const (
	functJR   = 0x08
	functJALR = 0x09

	regimmBLTZ   = 0x00
	regimmBGEZ   = 0x01
	regimmBLTZAL = 0x10
	regimmBGEZAL = 0x11
)

func init() {
	registerPrimary(0x02, opJ)
	registerPrimary(0x03, opJAL)
	registerPrimary(0x04, opBEQ)
	registerPrimary(0x05, opBNE)
	registerPrimary(0x06, opBLEZ)
	registerPrimary(0x07, opBGTZ)

	registerSecondary(functJR, opJR)
	registerSecondary(functJALR, opJALR)

	registerRegimm(regimmBLTZ, opBLTZ)
	registerRegimm(regimmBGEZ, opBGEZ)
	registerRegimm(regimmBLTZAL, opBLTZAL)
	registerRegimm(regimmBGEZAL, opBGEZAL)
}

// branchTarget computes pc + (sign_extend(imm16) << 2), where pc is the value of c.PC as already
// advanced by Step -- the address of the delay slot instruction.
func (c *CPU) branchTarget(ir Instruction) Word {
	return c.PC + (ir.Imm16() << 2)
}

// linkAddr is the address JAL/JALR/BLTZAL/BGEZAL write into the link register: the instruction
// after the delay slot.
func (c *CPU) linkAddr() Word {
	return c.PC + 4
}

func opJ(c *CPU, ir Instruction) {
	c.NextPC = (c.PC & 0xF0000000) | (Word(ir.Target26()) << 2)
}

func opJAL(c *CPU, ir Instruction) {
	c.Reg.SetRA(c.linkAddr())
	c.NextPC = (c.PC & 0xF0000000) | (Word(ir.Target26()) << 2)
}

func opJR(c *CPU, ir Instruction) {
	c.NextPC = c.Reg.Get(ir.Rs())
}

func opJALR(c *CPU, ir Instruction) {
	target := c.Reg.Get(ir.Rs())
	c.Reg.Set(ir.Rd(), c.linkAddr())
	c.NextPC = target
}

func opBEQ(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()) == c.Reg.Get(ir.Rt()) {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBNE(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()) != c.Reg.Get(ir.Rt()) {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBLEZ(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() <= 0 {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBGTZ(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() > 0 {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBLTZ(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() < 0 {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBGEZ(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() >= 0 {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBLTZAL(c *CPU, ir Instruction) {
	c.Reg.SetRA(c.linkAddr())

	if c.Reg.Get(ir.Rs()).Signed() < 0 {
		c.NextPC = c.branchTarget(ir)
	}
}

func opBGEZAL(c *CPU, ir Instruction) {
	c.Reg.SetRA(c.linkAddr())

	if c.Reg.Get(ir.Rs()).Signed() >= 0 {
		c.NextPC = c.branchTarget(ir)
	}
}
