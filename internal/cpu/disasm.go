package cpu

// disasm.go renders a raw instruction word as a MIPS-style mnemonic string. It decomposes the word
// through the same primary/secondary/REGIMM fields the dispatch tables use (decode.go), then looks
// the opcode up in a name table -- the same "field extraction, then table lookup" shape the
// teacher's assembler used for the opposite direction (mnemonic text to encoded word). It is
// read-only: nothing here affects execution, and nothing in Step calls it.

import "fmt"

var primaryNames = map[uint8]string{
	0x02: "j", 0x03: "jal",
	0x04: "beq", 0x05: "bne", 0x06: "blez", 0x07: "bgtz",
	0x08: "addi", 0x09: "addiu", 0x0A: "slti", 0x0B: "sltiu",
	0x0C: "andi", 0x0D: "ori", 0x0E: "xori", 0x0F: "lui",
	0x10: "cop0",
	0x20: "lb", 0x21: "lh", 0x22: "lwl", 0x23: "lw",
	0x24: "lbu", 0x25: "lhu", 0x26: "lwr",
	0x28: "sb", 0x29: "sh", 0x2A: "swl", 0x2B: "sw", 0x2E: "swr",
}

var secondaryNames = map[uint8]string{
	0x00: "sll", 0x02: "srl", 0x03: "sra",
	0x04: "sllv", 0x06: "srlv", 0x07: "srav",
	0x08: "jr", 0x09: "jalr",
	0x0C: "syscall", 0x0D: "break",
	0x10: "mfhi", 0x11: "mthi", 0x12: "mflo", 0x13: "mtlo",
	0x18: "mult", 0x19: "multu", 0x1A: "div", 0x1B: "divu",
	0x20: "add", 0x21: "addu", 0x22: "sub", 0x23: "subu",
	0x24: "and", 0x25: "or", 0x26: "xor", 0x27: "nor",
	0x2A: "slt", 0x2B: "sltu",
}

var regimmNames = map[uint8]string{
	regimmBLTZ: "bltz", regimmBGEZ: "bgez",
	regimmBLTZAL: "bltzal", regimmBGEZAL: "bgezal",
}

// Disassemble renders ir as a MIPS-style mnemonic string, e.g. "addiu   $v0, $zero, 0x7". Reserved
// or unimplemented opcodes render as a ".word" directive showing the raw value, matching how an
// assembler falls back when it can't name an instruction.
func Disassemble(ir Instruction) string {
	op := ir.Op()

	switch op {
	case 0x00:
		return disasmSecondary(ir)
	case 0x01:
		return disasmRegimm(ir)
	case cop0Primary:
		return disasmCOP0(ir)
	}

	name, ok := primaryNames[op]
	if !ok {
		return disasmWord(ir)
	}

	switch {
	case op == 0x02 || op == 0x03: // J, JAL
		return fmt.Sprintf("%-7s %#07x", name, ir.Target26()<<2)
	case op >= 0x04 && op <= 0x07: // BEQ, BNE, BLEZ, BGTZ
		return fmt.Sprintf("%-7s %s, %s, %#x", name, regName(ir.Rs()), regName(ir.Rt()), ir.Imm16().Signed())
	case op == 0x0F: // LUI
		return fmt.Sprintf("%-7s %s, %#x", name, regName(ir.Rt()), ir.ImmU16())
	case op == 0x0C || op == 0x0D || op == 0x0E: // ANDI, ORI, XORI: zero-extended
		return fmt.Sprintf("%-7s %s, %s, %#x", name, regName(ir.Rt()), regName(ir.Rs()), ir.ImmU16())
	case isMemOp(op):
		return fmt.Sprintf("%-7s %s, %#x(%s)", name, regName(ir.Rt()), ir.Imm16().Signed(), regName(ir.Rs()))
	default: // ADDI, ADDIU, SLTI, SLTIU: sign-extended
		return fmt.Sprintf("%-7s %s, %s, %#x", name, regName(ir.Rt()), regName(ir.Rs()), ir.Imm16().Signed())
	}
}

func isMemOp(op uint8) bool {
	switch op {
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x28, 0x29, 0x2A, 0x2B, 0x2E:
		return true
	default:
		return false
	}
}

func disasmSecondary(ir Instruction) string {
	funct := ir.Funct()

	name, ok := secondaryNames[funct]
	if !ok {
		return disasmWord(ir)
	}

	switch funct {
	case functSLL, functSRL, functSRA:
		return fmt.Sprintf("%-7s %s, %s, %#x", name, regName(ir.Rd()), regName(ir.Rt()), ir.Shamt())
	case functSLLV, functSRLV, functSRAV:
		return fmt.Sprintf("%-7s %s, %s, %s", name, regName(ir.Rd()), regName(ir.Rt()), regName(ir.Rs()))
	case functJR:
		return fmt.Sprintf("%-7s %s", name, regName(ir.Rs()))
	case functJALR:
		return fmt.Sprintf("%-7s %s, %s", name, regName(ir.Rd()), regName(ir.Rs()))
	case functSyscall, functBreak:
		return name
	case functMFHI, functMFLO:
		return fmt.Sprintf("%-7s %s", name, regName(ir.Rd()))
	case functMTHI, functMTLO:
		return fmt.Sprintf("%-7s %s", name, regName(ir.Rs()))
	case functMULT, functMULTU, functDIV, functDIVU:
		return fmt.Sprintf("%-7s %s, %s", name, regName(ir.Rs()), regName(ir.Rt()))
	default:
		return fmt.Sprintf("%-7s %s, %s, %s", name, regName(ir.Rd()), regName(ir.Rs()), regName(ir.Rt()))
	}
}

func disasmRegimm(ir Instruction) string {
	name, ok := regimmNames[uint8(ir.Rt())]
	if !ok {
		return disasmWord(ir)
	}

	return fmt.Sprintf("%-7s %s, %#x", name, regName(ir.Rs()), ir.Imm16().Signed())
}

func disasmCOP0(ir Instruction) string {
	switch ir.Rs() {
	case cop0RsMF:
		return fmt.Sprintf("%-7s %s, $%d", "mfc0", regName(ir.Rt()), ir.Rd())
	case cop0RsMT:
		return fmt.Sprintf("%-7s %s, $%d", "mtc0", regName(ir.Rt()), ir.Rd())
	default:
		return disasmWord(ir)
	}
}

func disasmWord(ir Instruction) string {
	return fmt.Sprintf(".word   %s", ir)
}

func regName(i uint) string {
	return "$" + regNames[i]
}
