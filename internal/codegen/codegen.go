package codegen

import (
	"fmt"

	"github.com/iley/hackvm/internal/asm"
	"github.com/iley/hackvm/internal/lexer"
	"github.com/iley/hackvm/internal/vm"
)

// Registers used by the generated code.
const (
	regSP   = "SP"
	regLCL  = "LCL"
	regARG  = "ARG"
	regTHIS = "THIS"
	regTHAT = "THAT"
	// Scratch registers. R13 holds a resolved segment address or the frame
	// cursor, R14 holds a captured return address.
	regAddr = "R13"
	regRet  = "R14"
)

// stackBase is the RAM address the stack pointer is initialized to.
const stackBase = 256

// Generator translates parsed VM commands into Hack assembly, one command at
// a time, in a single forward pass. It owns all cross-command state: the
// current file scope for static symbols, the current function scope for
// labels, and the counters that keep generated branch and return labels
// globally unique. One Generator instance spans the whole output, including
// all input files, so the counters are never reset between files.
type Generator struct {
	fileBase string
	function string

	cmpCount  int
	callCount int

	// Function names declared so far, for duplicate detection across files.
	declared map[string]lexer.Location

	instrs []asm.Instr
}

func New() *Generator {
	return &Generator{
		declared: make(map[string]lexer.Location),
	}
}

// SetFile sets the base name used to qualify static symbols for all commands
// until the next SetFile call. Call it once per input file, before the file's
// first command.
func (g *Generator) SetFile(base string) {
	g.fileBase = base
}

// Instructions returns the accumulated output. The slice is append-only and
// never reordered; instructions appear in exactly the order their source
// commands were consumed.
func (g *Generator) Instructions() []asm.Instr {
	return g.instrs
}

// Generate appends the translation of one command to the output.
func (g *Generator) Generate(cmd vm.Command) error {
	g.emit(asm.Comment(cmd.String()))

	switch cmd.Kind {
	case vm.CMD_PUSH:
		return g.genPush(cmd)
	case vm.CMD_POP:
		return g.genPop(cmd)
	case vm.CMD_ADD:
		g.genBinary("D+M")
	case vm.CMD_SUB:
		g.genBinary("M-D")
	case vm.CMD_AND:
		g.genBinary("D&M")
	case vm.CMD_OR:
		g.genBinary("D|M")
	case vm.CMD_NEG:
		g.genUnary("-M")
	case vm.CMD_NOT:
		g.genUnary("!M")
	case vm.CMD_EQ:
		g.genComparison("JEQ")
	case vm.CMD_GT:
		g.genComparison("JGT")
	case vm.CMD_LT:
		g.genComparison("JLT")
	case vm.CMD_LABEL:
		g.genLabel(cmd)
	case vm.CMD_GOTO:
		g.genGoto(cmd)
	case vm.CMD_IF_GOTO:
		g.genIfGoto(cmd)
	case vm.CMD_FUNCTION:
		return g.genFunction(cmd)
	case vm.CMD_CALL:
		g.genCall(cmd.Name, cmd.Index)
	case vm.CMD_RETURN:
		g.genReturn()
	default:
		return fmt.Errorf("%s: unhandled command kind %v", cmd.Loc, cmd.Kind)
	}
	return nil
}

func (g *Generator) emit(instrs ...asm.Instr) {
	g.instrs = append(g.instrs, instrs...)
}

// pushD appends the sequence that pushes the D register onto the stack.
func (g *Generator) pushD() {
	g.emit(
		asm.At(regSP),
		asm.C("A", "M"),
		asm.C("M", "D"),
		asm.At(regSP),
		asm.C("M", "M+1"),
	)
}

// popD appends the sequence that pops the stack top into the D register.
func (g *Generator) popD() {
	g.emit(
		asm.At(regSP),
		asm.C("AM", "M-1"),
		asm.C("D", "M"),
	)
}
