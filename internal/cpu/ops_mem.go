package cpu

// ops_mem.go implements the load and store family: the ordinary sign/zero-extending byte,
// halfword, and word accesses, and the unaligned word transfers (LWL/LWR/SWL/SWR) that let
// compiled code read and write a misaligned word as two overlapping aligned accesses.
//
// Ordinary loads don't write their destination register immediately -- they schedule a delayed
// write through c.scheduleLoad, per the load-delay slot. LWL/LWR are the documented exception:
// they read the register file immediately (to merge with the bytes already loaded) and write
// immediately too, so back-to-back LWL/LWR pairs targeting the same register compose correctly.

import "mipscore/internal/bus"

func init() {
	registerPrimary(0x20, opLB)
	registerPrimary(0x24, opLBU)
	registerPrimary(0x21, opLH)
	registerPrimary(0x25, opLHU)
	registerPrimary(0x23, opLW)
	registerPrimary(0x28, opSB)
	registerPrimary(0x29, opSH)
	registerPrimary(0x2B, opSW)
	registerPrimary(0x22, opLWL)
	registerPrimary(0x26, opLWR)
	registerPrimary(0x2A, opSWL)
	registerPrimary(0x2E, opSWR)
}

func (c *CPU) effectiveAddr(ir Instruction) Word {
	return c.Reg.Get(ir.Rs()) + ir.Imm16()
}

func opLB(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	v := c.Bus.Read8(uint32(addr))
	c.scheduleLoad(ir.Rt(), Word(int32(int8(v))))
}

func opLBU(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	v := c.Bus.Read8(uint32(addr))
	c.scheduleLoad(ir.Rt(), Word(v))
}

func opLH(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)

	v, err := c.Bus.Read16(uint32(addr))
	if err != nil {
		c.raiseAddressFault(addr, false)
		return
	}

	c.scheduleLoad(ir.Rt(), Word(int32(int16(v))))
}

func opLHU(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)

	v, err := c.Bus.Read16(uint32(addr))
	if err != nil {
		c.raiseAddressFault(addr, false)
		return
	}

	c.scheduleLoad(ir.Rt(), Word(v))
}

func opLW(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)

	v, err := c.Bus.Read32(uint32(addr))
	if err != nil {
		c.raiseAddressFault(addr, false)
		return
	}

	c.scheduleLoad(ir.Rt(), Word(v))
}

func opSB(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	c.Bus.Write8(uint32(addr), byte(c.Reg.Get(ir.Rt())))
}

func opSH(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	if err := c.Bus.Write16(uint32(addr), uint16(c.Reg.Get(ir.Rt()))); err != nil {
		c.raiseAddressFault(addr, true)
	}
}

func opSW(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	if err := c.Bus.Write32(uint32(addr), uint32(c.Reg.Get(ir.Rt()))); err != nil {
		c.raiseAddressFault(addr, true)
	}
}

func (c *CPU) raiseAddressFault(addr Word, store bool) {
	err := &bus.AddressError{Addr: uint32(addr), Store: store}
	c.raise(err.Code(), err)
}

// opLWL implements the left (big end, in MIPS's big-endian-oriented naming) partial load: on a
// little-endian host, the bytes it contributes are the high-order bytes of the result.
func opLWL(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	aligned := addr &^ 3
	off := addr & 3

	mem, _ := c.Bus.Read32(uint32(aligned))
	rtOld := c.Reg.Get(ir.Rt())

	var result Word
	if off == 0 {
		result = Word(mem)
	} else {
		shift := 24 - 8*off
		mask := Word(0x00FFFFFF) >> (8 * off)
		result = (rtOld & mask) | (Word(mem) << shift)
	}

	c.Reg.Set(ir.Rt(), result)
}

// opLWR implements the right partial load, contributing the low-order bytes of the result.
func opLWR(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	aligned := addr &^ 3
	off := addr & 3

	mem, _ := c.Bus.Read32(uint32(aligned))
	rtOld := c.Reg.Get(ir.Rt())

	var result Word
	if off == 3 {
		result = Word(mem)
	} else {
		mask := Word(0xFFFFFF00) << (24 - 8*off)
		result = (rtOld & mask) | (Word(mem) >> (8 * off))
	}

	c.Reg.Set(ir.Rt(), result)
}

// opSWL is the structural mirror of opLWL: it writes rt's top (4-off) bytes -- unshifted, just
// masked into place -- over byte positions off..3 of the aligned word, leaving the aligned word's
// lower off bytes untouched. At off == 0 the mask covers the whole word.
func opSWL(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	aligned := addr &^ 3
	off := addr & 3

	mem, _ := c.Bus.Read32(uint32(aligned))
	rt := c.Reg.Get(ir.Rt())

	mask := ^Word(0) << (8 * off)
	result := (Word(mem) &^ mask) | (rt & mask)

	_ = c.Bus.Write32(uint32(aligned), uint32(result))
}

// opSWR is the structural mirror of opLWR: it writes rt's bottom (off+1) bytes over the aligned
// word's low byte positions, leaving the upper (3-off) bytes untouched. At off == 3 the mask
// covers the whole word.
func opSWR(c *CPU, ir Instruction) {
	addr := c.effectiveAddr(ir)
	aligned := addr &^ 3
	off := addr & 3

	mem, _ := c.Bus.Read32(uint32(aligned))
	rt := c.Reg.Get(ir.Rt())

	mask := ^Word(0) >> (8 * (3 - off))
	result := (Word(mem) &^ mask) | (rt & mask)

	_ = c.Bus.Write32(uint32(aligned), uint32(result))
}
