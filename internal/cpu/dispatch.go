package cpu

// dispatch.go builds the two flat 64-entry dispatch tables described by the instruction set: one
// indexed by the primary opcode field, one by the secondary "function" field reached when the
// primary opcode is 0. A third, smaller table handles the REGIMM family (primary opcode 1), which
// branches further on the rt field.
//
// Every table starts out filled with a reserved-instruction handler. Opcode handlers register
// themselves into the tables from each ops_*.go file's own init(), so the tables are simple package
// data built once at program startup -- no global mutable state threaded through call sites, and no
// branching over opcode ranges at dispatch time.

// opFunc is the signature every instruction handler implements. It receives the already-fetched
// instruction word; it reads operands from and writes results to the CPU, may read or write the
// bus, and may redirect NextPC or raise a trap.
type opFunc func(c *CPU, ir Instruction)

const regimmSize = 32

var (
	primaryTable   [64]opFunc
	secondaryTable [64]opFunc
	regimmTable    [regimmSize]opFunc

	primaryRegistered   [64]bool
	secondaryRegistered [64]bool
	regimmRegistered    [regimmSize]bool
)

func init() {
	for i := range primaryTable {
		primaryTable[i] = opReservedInstruction
	}

	for i := range secondaryTable {
		secondaryTable[i] = opReservedInstruction
	}

	for i := range regimmTable {
		regimmTable[i] = opReservedInstruction
	}

	primaryTable[0x00] = dispatchSecondary
	primaryTable[0x01] = dispatchRegimm
	primaryRegistered[0x00] = true
	primaryRegistered[0x01] = true
}

// registerPrimary installs a handler for a primary opcode. A second registration for the same
// opcode is a programming error and panics at init time rather than silently overwriting.
func registerPrimary(op uint8, fn opFunc) {
	if primaryRegistered[op] {
		panic("cpu: duplicate primary opcode registration")
	}

	primaryTable[op] = fn
	primaryRegistered[op] = true
}

// registerSecondary installs a handler for a secondary (funct) opcode, reached when op == 0.
func registerSecondary(funct uint8, fn opFunc) {
	if secondaryRegistered[funct] {
		panic("cpu: duplicate secondary opcode registration")
	}

	secondaryTable[funct] = fn
	secondaryRegistered[funct] = true
}

// registerRegimm installs a handler for one of the four REGIMM sub-opcodes, reached when op == 1.
func registerRegimm(rt uint8, fn opFunc) {
	if regimmRegistered[rt] {
		panic("cpu: duplicate REGIMM registration")
	}

	regimmTable[rt] = fn
	regimmRegistered[rt] = true
}

func dispatchSecondary(c *CPU, ir Instruction) {
	secondaryTable[ir.Funct()](c, ir)
}

// dispatchRegimm routes the four REGIMM branches (BLTZ/BGEZ/BLTZAL/BGEZAL) by rt.
func dispatchRegimm(c *CPU, ir Instruction) {
	regimmTable[ir.Rt()](c, ir)
}

func opReservedInstruction(c *CPU, ir Instruction) {
	c.raise(CauseReservedInstr, ErrReservedInstruction)
}
