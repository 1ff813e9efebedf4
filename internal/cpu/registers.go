package cpu

// registers.go defines the general-purpose register file and the small set of special registers.

import (
	"fmt"
	"strings"

	"mipscore/internal/log"
)

// Word is the base data type the processor operates on. All memory access is little-endian;
// signed operations reinterpret the same bits as two's-complement.
type Word uint32

func (w Word) String() string { return fmt.Sprintf("%#08x", uint32(w)) }

// Signed reinterprets the word as a two's-complement int32.
func (w Word) Signed() int32 { return int32(w) }

// NumGPR is the number of general-purpose registers.
const NumGPR = 32

// Conventional ABI register indices.
const (
	R0 = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)

var regNames = [NumGPR]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Registers is the general-purpose register file: 32 words, with r[0] hard-wired to zero (I1).
// The file is addressed two ways -- Get/Set by index, for generic opcode handlers, and named
// accessors like SP/RA for handcrafted code -- and both views must agree bit for bit, so the named
// accessors are nothing more than Get/Set called with a fixed index.
type Registers [NumGPR]Word

// Get reads register i. Reading index 0 always yields zero.
func (r *Registers) Get(i uint) Word {
	return r[i]
}

// Set writes register i. Writing index 0 is a no-op (I1), enforced here rather than by making the
// slot immutable, so the zero-check lives in exactly one place.
func (r *Registers) Set(i uint, v Word) {
	if i == 0 {
		return
	}

	r[i] = v
}

// SP returns the stack pointer, r[29].
func (r *Registers) SP() Word { return r.Get(SP) }

// SetSP sets the stack pointer.
func (r *Registers) SetSP(v Word) { r.Set(SP, v) }

// RA returns the return-address register, r[31].
func (r *Registers) RA() Word { return r.Get(RA) }

// SetRA sets the return-address register.
func (r *Registers) SetRA(v Word) { r.Set(RA, v) }

func (r Registers) String() string {
	var b strings.Builder

	for i := 0; i < NumGPR; i += 2 {
		fmt.Fprintf(&b, "%-4s %s  %-4s %s\n", regNames[i], r[i], regNames[i+1], r[i+1])
	}

	return b.String()
}

// LogValue renders the register file as a structured log group.
func (r Registers) LogValue() log.Value {
	attrs := make([]log.Attr, NumGPR)
	for i := range r {
		attrs[i] = log.String(regNames[i], r[i].String())
	}

	return log.GroupValue(attrs...)
}

// CP0 models the system-control coprocessor registers this core supports: the status register,
// cause register, exception PC, and bad virtual address register.
type CP0 struct {
	SR       Word
	Cause    Word
	EPC      Word
	BadVAddr Word
}

// Coprocessor-0 register numbers addressable by MFC0/MTC0.
const (
	CP0BadVAddr = 8
	CP0SR       = 12
	CP0Cause    = 13
	CP0EPC      = 14
)

// Status register bit fields. Only cache isolation is modeled; the rest of the real SR (interrupt
// masks, kernel/user mode, cache state) is out of scope for this core.
const (
	// SRCacheIsolate is bit 16 of SR. Real hardware routes writes to cache instead of memory while
	// this bit is set, which the BIOS briefly relies on; this core does not model a cache, so the
	// bit is tracked but does not change bus behavior (see design notes on open questions).
	SRCacheIsolate Word = 1 << 16
)

func (c CP0) String() string {
	return fmt.Sprintf("SR:%s CAUSE:%s EPC:%s BADVADDR:%s", c.SR, c.Cause, c.EPC, c.BadVAddr)
}
