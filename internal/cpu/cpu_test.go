package cpu_test

import (
	"testing"

	"mipscore/internal/bus"
	"mipscore/internal/cpu"
)

// asm is a tiny test-only assembler for the handful of encodings these tests need. It exists so
// scenarios read as instruction mnemonics instead of raw hex.
type asm struct{}

func (a asm) itype(op, rs, rt uint32, imm uint16) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm)
}

func (a asm) ADDIU(rt, rs uint32, imm uint16) uint32 { return a.itype(0x09, rs, rt, imm) }
func (a asm) LUI(rt uint32, imm uint16) uint32       { return a.itype(0x0F, 0, rt, imm) }
func (a asm) ORI(rt, rs uint32, imm uint16) uint32   { return a.itype(0x0D, rs, rt, imm) }
func (a asm) BEQ(rs, rt uint32, imm uint16) uint32   { return a.itype(0x04, rs, rt, imm) }
func (a asm) LW(rt, rs uint32, imm uint16) uint32    { return a.itype(0x23, rs, rt, imm) }
func (a asm) LWL(rt, rs uint32, imm uint16) uint32   { return a.itype(0x22, rs, rt, imm) }
func (a asm) LWR(rt, rs uint32, imm uint16) uint32   { return a.itype(0x26, rs, rt, imm) }
func (a asm) SWL(rt, rs uint32, imm uint16) uint32   { return a.itype(0x2A, rs, rt, imm) }
func (a asm) SWR(rt, rs uint32, imm uint16) uint32   { return a.itype(0x2E, rs, rt, imm) }

const (
	r0 = 0
	r1 = 1
	r2 = 2
	r3 = 3
	r4 = 4
	r5 = 5
)

func newTestCPU(t *testing.T, program []uint32) (*cpu.CPU, *bus.Bus) {
	t.Helper()

	b := bus.New()
	c, err := cpu.New(b, cpu.WithPC(0x80010000))
	if err != nil {
		t.Fatalf("cpu.New: %v", err)
	}

	for i, word := range program {
		if err := b.Write32(0x80010000+uint32(i*4), word); err != nil {
			t.Fatalf("write32: %v", err)
		}
	}

	return c, b
}

func step(t *testing.T, c *cpu.CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

// LUI/ORI compose a 32-bit constant (spec.md scenario 1).
func TestLUIORIComposeConstant(t *testing.T) {
	var a asm

	c, _ := newTestCPU(t, []uint32{
		a.LUI(r1, 0xDEAD),
		a.ORI(r1, r1, 0xBEEF),
	})

	step(t, c, 2)

	if got := c.Reg.Get(r1); got != 0xDEADBEEF {
		t.Errorf("r1 = %#x, want 0xdeadbeef", uint32(got))
	}
}

// Branch delay slot fires (spec.md scenario 2): BEQ r0,r0,+1; ADDIU r2,r0,7; ADDIU r2,r0,9.
func TestBranchDelaySlotFires(t *testing.T) {
	var a asm

	c, _ := newTestCPU(t, []uint32{
		a.BEQ(r0, r0, 1),
		a.ADDIU(r2, r0, 7),
		a.ADDIU(r2, r0, 9),
	})

	step(t, c, 3)

	if got := c.Reg.Get(r2); got != 9 {
		t.Errorf("r2 = %d, want 9 (delay slot must execute before the branch target)", uint32(got))
	}
}

// Load delay is visible (spec.md scenario 3).
func TestLoadDelaySlotVisible(t *testing.T) {
	var a asm

	c, b := newTestCPU(t, []uint32{
		a.ADDIU(r3, r0, 0),
		a.ADDIU(r1, r0, 0x100),
		a.LW(r2, r1, 0),
		a.ADDIU(r4, r2, 0),
		a.ADDIU(r5, r2, 0),
	})

	if err := b.Write32(0x100, 0x11223344); err != nil {
		t.Fatalf("write32: %v", err)
	}

	step(t, c, 5)

	if got := c.Reg.Get(r4); got != 0 {
		t.Errorf("r4 = %#x, want 0 (instruction right after LW sees the old value)", uint32(got))
	}

	if got := c.Reg.Get(r5); got != 0x11223344 {
		t.Errorf("r5 = %#x, want 0x11223344", uint32(got))
	}
}

// Mirror coherence (spec.md scenario 4), driven through the CPU's bus rather than directly.
func TestMirrorCoherenceThroughCPU(t *testing.T) {
	_, b := newTestCPU(t, nil)

	if err := b.Write32(0x00001000, 0xCAFEBABE); err != nil {
		t.Fatalf("write32: %v", err)
	}

	for _, addr := range []uint32{0x00001000, 0x80001000, 0xA0001000} {
		got, err := b.Read32(addr)
		if err != nil {
			t.Fatalf("read32(%#x): %v", addr, err)
		}

		if got != 0xCAFEBABE {
			t.Errorf("read32(%#x) = %#x, want 0xcafebabe", addr, got)
		}
	}
}

// Unaligned load composes LWL+LWR (spec.md scenario 6).
func TestUnalignedLoadComposesLWLAndLWR(t *testing.T) {
	var a asm

	c, b := newTestCPU(t, []uint32{
		a.LWL(r1, r0, 0x103),
		a.LWR(r1, r0, 0x100),
		a.LWL(r2, r0, 0x107),
		a.LWR(r2, r0, 0x104),
	})

	mem := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i, bt := range mem {
		b.Write8(0x100+uint32(i), bt)
	}

	step(t, c, 4)

	if got := c.Reg.Get(r1); got != 0x04030201 {
		t.Errorf("r1 = %#x, want 0x04030201", uint32(got))
	}

	if got := c.Reg.Get(r2); got != 0x08070605 {
		t.Errorf("r2 = %#x, want 0x08070605", uint32(got))
	}
}

// Unaligned store composes SWL+SWR (spec.md §8's SWL/SWR round-trip invariant): every combination
// of offsets whose covered byte ranges union to the whole word must reconstruct the stored value.
// The first word exercises SWL covering the top 3 bytes plus SWR covering just the bottom byte; the
// second word exercises the complementary split, so all four byte offsets are exercised across the
// two words.
func TestUnalignedStoreComposesSWLAndSWR(t *testing.T) {
	var a asm

	c, b := newTestCPU(t, []uint32{
		a.ADDIU(r1, r0, 0x100),
		a.LUI(r2, 0x0403),
		a.ORI(r2, r2, 0x0201),
		a.SWL(r2, r1, 1), // addr 0x101, off 1: writes bytes 1-3
		a.SWR(r2, r1, 0), // addr 0x100, off 0: writes byte 0
		a.LUI(r4, 0x0807),
		a.ORI(r4, r4, 0x0605),
		a.SWL(r4, r1, 7), // addr 0x107, off 3: writes byte 3
		a.SWR(r4, r1, 6), // addr 0x106, off 2: writes bytes 0-2
	})

	step(t, c, 9)

	got, err := b.Read32(0x100)
	if err != nil {
		t.Fatalf("read32(0x100): %v", err)
	}

	if got != 0x04030201 {
		t.Errorf("mem[0x100] = %#x, want 0x04030201", got)
	}

	got, err = b.Read32(0x104)
	if err != nil {
		t.Fatalf("read32(0x104): %v", err)
	}

	if got != 0x08070605 {
		t.Errorf("mem[0x104] = %#x, want 0x08070605", got)
	}
}

func TestZeroRegisterAlwaysReadsZero(t *testing.T) {
	var a asm

	c, _ := newTestCPU(t, []uint32{
		a.ADDIU(r0, r0, 42),
	})

	step(t, c, 1)

	if got := c.Reg.Get(r0); got != 0 {
		t.Errorf("r0 = %d, want 0 (writes to r0 are discarded)", uint32(got))
	}
}

func TestReservedInstructionHalts(t *testing.T) {
	c, b := newTestCPU(t, nil)

	// 0x3F is unused by both the primary and secondary tables.
	if err := b.Write32(0x80010000, 0x3F<<26); err != nil {
		t.Fatalf("write32: %v", err)
	}

	if err := c.Step(); err == nil {
		t.Fatal("expected a trap from the reserved instruction")
	}

	if !c.Halted {
		t.Error("CPU should be halted after a reserved instruction")
	}

	if err := c.Step(); err == nil {
		t.Error("stepping a halted CPU should return an error")
	}
}
