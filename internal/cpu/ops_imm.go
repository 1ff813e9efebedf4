package cpu

// ops_imm.go implements the immediate-operand ALU instructions: LUI, ORI, ANDI, XORI, ADDI, ADDIU,
// SLTI, SLTIU.

func init() {
	registerPrimary(0x0F, opLUI)
	registerPrimary(0x0D, opORI)
	registerPrimary(0x0C, opANDI)
	registerPrimary(0x0E, opXORI)
	registerPrimary(0x08, opADDI)
	registerPrimary(0x09, opADDIU)
	registerPrimary(0x0A, opSLTI)
	registerPrimary(0x0B, opSLTIU)
}

func opLUI(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rt(), Word(ir.ImmU16())<<16)
}

func opORI(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rt(), c.Reg.Get(ir.Rs())|Word(ir.ImmU16()))
}

func opANDI(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rt(), c.Reg.Get(ir.Rs())&Word(ir.ImmU16()))
}

func opXORI(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rt(), c.Reg.Get(ir.Rs())^Word(ir.ImmU16()))
}

func opADDI(c *CPU, ir Instruction) {
	a := c.Reg.Get(ir.Rs()).Signed()
	b := ir.Imm16().Signed()
	sum := a + b

	if addOverflows(a, b, sum) {
		c.raise(CauseOverflow, ErrIntegerOverflow)
		return
	}

	c.Reg.Set(ir.Rt(), Word(sum))
}

func opADDIU(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rt(), c.Reg.Get(ir.Rs())+ir.Imm16())
}

func opSLTI(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() < ir.Imm16().Signed() {
		c.Reg.Set(ir.Rt(), 1)
	} else {
		c.Reg.Set(ir.Rt(), 0)
	}
}

func opSLTIU(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()) < ir.Imm16() {
		c.Reg.Set(ir.Rt(), 1)
	} else {
		c.Reg.Set(ir.Rt(), 0)
	}
}

// addOverflows reports a two's-complement overflow for a+b=sum: it can only happen when the two
// operands share a sign and the result's sign differs from theirs.
func addOverflows(a, b, sum int32) bool {
	return (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0)
}

// subOverflows reports a two's-complement overflow for a-b=diff.
func subOverflows(a, b, diff int32) bool {
	return (a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0)
}
