package cpu

// ops_alu.go implements the register-register ALU family, reached through the secondary (funct)
// table: shifts, the trapping and non-trapping arithmetic/logical ops, multiply/divide, and the
// HI/LO moves.

const (
	functSLL  = 0x00
	functSRL  = 0x02
	functSRA  = 0x03
	functSLLV = 0x04
	functSRLV = 0x06
	functSRAV = 0x07

	functMFHI = 0x10
	functMTHI = 0x11
	functMFLO = 0x12
	functMTLO = 0x13

	functMULT  = 0x18
	functMULTU = 0x19
	functDIV   = 0x1A
	functDIVU  = 0x1B

	functADD  = 0x20
	functADDU = 0x21
	functSUB  = 0x22
	functSUBU = 0x23
	functAND  = 0x24
	functOR   = 0x25
	functXOR  = 0x26
	functNOR  = 0x27
	functSLT  = 0x2A
	functSLTU = 0x2B
)

func init() {
	registerSecondary(functSLL, opSLL)
	registerSecondary(functSRL, opSRL)
	registerSecondary(functSRA, opSRA)
	registerSecondary(functSLLV, opSLLV)
	registerSecondary(functSRLV, opSRLV)
	registerSecondary(functSRAV, opSRAV)

	registerSecondary(functMFHI, opMFHI)
	registerSecondary(functMTHI, opMTHI)
	registerSecondary(functMFLO, opMFLO)
	registerSecondary(functMTLO, opMTLO)

	registerSecondary(functMULT, opMULT)
	registerSecondary(functMULTU, opMULTU)
	registerSecondary(functDIV, opDIV)
	registerSecondary(functDIVU, opDIVU)

	registerSecondary(functADD, opADD)
	registerSecondary(functADDU, opADDU)
	registerSecondary(functSUB, opSUB)
	registerSecondary(functSUBU, opSUBU)
	registerSecondary(functAND, opAND)
	registerSecondary(functOR, opOR)
	registerSecondary(functXOR, opXOR)
	registerSecondary(functNOR, opNOR)
	registerSecondary(functSLT, opSLT)
	registerSecondary(functSLTU, opSLTU)
}

func opSLL(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rt())<<ir.Shamt())
}

func opSRL(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rt())>>ir.Shamt())
}

func opSRA(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), Word(c.Reg.Get(ir.Rt()).Signed()>>ir.Shamt()))
}

func opSLLV(c *CPU, ir Instruction) {
	shamt := c.Reg.Get(ir.Rs()) & 0x1F
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rt())<<shamt)
}

func opSRLV(c *CPU, ir Instruction) {
	shamt := c.Reg.Get(ir.Rs()) & 0x1F
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rt())>>shamt)
}

func opSRAV(c *CPU, ir Instruction) {
	shamt := c.Reg.Get(ir.Rs()) & 0x1F
	c.Reg.Set(ir.Rd(), Word(c.Reg.Get(ir.Rt()).Signed()>>shamt))
}

func opMFHI(c *CPU, ir Instruction) { c.Reg.Set(ir.Rd(), c.HI) }
func opMTHI(c *CPU, ir Instruction) { c.HI = c.Reg.Get(ir.Rs()) }
func opMFLO(c *CPU, ir Instruction) { c.Reg.Set(ir.Rd(), c.LO) }
func opMTLO(c *CPU, ir Instruction) { c.LO = c.Reg.Get(ir.Rs()) }

func opMULT(c *CPU, ir Instruction) {
	product := int64(c.Reg.Get(ir.Rs()).Signed()) * int64(c.Reg.Get(ir.Rt()).Signed())
	c.LO = Word(uint64(product))
	c.HI = Word(uint64(product) >> 32)
}

func opMULTU(c *CPU, ir Instruction) {
	product := uint64(c.Reg.Get(ir.Rs())) * uint64(c.Reg.Get(ir.Rt()))
	c.LO = Word(product)
	c.HI = Word(product >> 32)
}

// opDIV and opDIVU leave HI/LO untouched on division by zero. Real hardware's behavior in that case
// is implementation-defined and not specified by the instruction set; the core raises no trap.
func opDIV(c *CPU, ir Instruction) {
	divisor := c.Reg.Get(ir.Rt()).Signed()
	if divisor == 0 {
		return
	}

	dividend := c.Reg.Get(ir.Rs()).Signed()
	c.LO = Word(dividend / divisor)
	c.HI = Word(dividend % divisor)
}

func opDIVU(c *CPU, ir Instruction) {
	divisor := uint32(c.Reg.Get(ir.Rt()))
	if divisor == 0 {
		return
	}

	dividend := uint32(c.Reg.Get(ir.Rs()))
	c.LO = Word(dividend / divisor)
	c.HI = Word(dividend % divisor)
}

func opADD(c *CPU, ir Instruction) {
	a := c.Reg.Get(ir.Rs()).Signed()
	b := c.Reg.Get(ir.Rt()).Signed()
	sum := a + b

	if addOverflows(a, b, sum) {
		c.raise(CauseOverflow, ErrIntegerOverflow)
		return
	}

	c.Reg.Set(ir.Rd(), Word(sum))
}

func opADDU(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rs())+c.Reg.Get(ir.Rt()))
}

func opSUB(c *CPU, ir Instruction) {
	a := c.Reg.Get(ir.Rs()).Signed()
	b := c.Reg.Get(ir.Rt()).Signed()
	diff := a - b

	if subOverflows(a, b, diff) {
		c.raise(CauseOverflow, ErrIntegerOverflow)
		return
	}

	c.Reg.Set(ir.Rd(), Word(diff))
}

func opSUBU(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rs())-c.Reg.Get(ir.Rt()))
}

func opAND(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rs())&c.Reg.Get(ir.Rt()))
}

func opOR(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rs())|c.Reg.Get(ir.Rt()))
}

func opXOR(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), c.Reg.Get(ir.Rs())^c.Reg.Get(ir.Rt()))
}

func opNOR(c *CPU, ir Instruction) {
	c.Reg.Set(ir.Rd(), ^(c.Reg.Get(ir.Rs()) | c.Reg.Get(ir.Rt())))
}

func opSLT(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()).Signed() < c.Reg.Get(ir.Rt()).Signed() {
		c.Reg.Set(ir.Rd(), 1)
	} else {
		c.Reg.Set(ir.Rd(), 0)
	}
}

func opSLTU(c *CPU, ir Instruction) {
	if c.Reg.Get(ir.Rs()) < c.Reg.Get(ir.Rt()) {
		c.Reg.Set(ir.Rd(), 1)
	} else {
		c.Reg.Set(ir.Rd(), 0)
	}
}
