package codegen

import (
	"fmt"

	"github.com/iley/hackvm/internal/asm"
	"github.com/iley/hackvm/internal/vm"
)

// entryFunction is the function the bootstrap block transfers control to.
const entryFunction = "Sys.init"

// savedFrameSize is the number of cells a call pushes before the callee's
// arguments become its argument segment: the return address plus the four
// saved base registers.
const savedFrameSize = 5

// scopedLabel qualifies a user label with the current function so identical
// label text in different functions never collides in the flattened output.
func (g *Generator) scopedLabel(name string) string {
	return g.function + "$" + name
}

func (g *Generator) genLabel(cmd vm.Command) {
	g.emit(asm.Label(g.scopedLabel(cmd.Name)))
}

func (g *Generator) genGoto(cmd vm.Command) {
	g.emit(
		asm.At(g.scopedLabel(cmd.Name)),
		asm.CJ("0", "JMP"),
	)
}

// genIfGoto pops the condition and branches if it is nonzero. The popped
// cell is zeroed rather than left stale.
func (g *Generator) genIfGoto(cmd vm.Command) {
	g.popD()
	g.emit(
		asm.C("M", "0"),
		asm.At(g.scopedLabel(cmd.Name)),
		asm.CJ("D", "JNE"),
	)
}

// genFunction emits the function's entry label, switches the label scope to
// the new function, and zero-initializes its local slots. Function names
// must be unique across the whole run since the entry label is unscoped.
func (g *Generator) genFunction(cmd vm.Command) error {
	if prev, ok := g.declared[cmd.Name]; ok {
		return fmt.Errorf("%s: function %s already declared at %s", cmd.Loc, cmd.Name, prev)
	}
	g.declared[cmd.Name] = cmd.Loc
	g.function = cmd.Name

	g.emit(asm.Label(cmd.Name))
	for i := 0; i < cmd.Index; i++ {
		g.emit(
			asm.At(regSP),
			asm.C("A", "M"),
			asm.C("M", "0"),
			asm.At(regSP),
			asm.C("M", "M+1"),
		)
	}
	return nil
}

// genCall emits the caller side of the calling convention. The callee's
// arguments are already on the stack. The return-address label combines the
// callee name with the call-site counter, so repeated calls to the same
// function land on distinct labels.
func (g *Generator) genCall(callee string, nArgs int) {
	n := g.callCount
	g.callCount++

	retLabel := fmt.Sprintf("%s$ret.%d", callee, n)

	// Push the return address.
	g.emit(
		asm.At(retLabel),
		asm.C("D", "A"),
	)
	g.pushD()

	// Save the caller's frame.
	for _, reg := range []string{regLCL, regARG, regTHIS, regTHAT} {
		g.emit(
			asm.At(reg),
			asm.C("D", "M"),
		)
		g.pushD()
	}

	// ARG = SP - nArgs - savedFrameSize
	g.emit(
		asm.At(regSP),
		asm.C("D", "M"),
		asm.AtInt(savedFrameSize),
		asm.C("D", "D-A"),
		asm.AtInt(nArgs),
		asm.C("D", "D-A"),
		asm.At(regARG),
		asm.C("M", "D"),
	)

	// LCL = SP
	g.emit(
		asm.At(regSP),
		asm.C("D", "M"),
		asm.At(regLCL),
		asm.C("M", "D"),
	)

	g.emit(
		asm.At(callee),
		asm.CJ("0", "JMP"),
		asm.Label(retLabel),
	)
}

// genReturn tears down the callee's frame: it stores the return value where
// the caller's first argument was, rewinds the stack pointer, restores the
// caller's base registers by walking the frame downward, and jumps to the
// saved return address.
func (g *Generator) genReturn() {
	// R13 = LCL (frame cursor), R14 = *(frame - savedFrameSize).
	g.emit(
		asm.At(regLCL),
		asm.C("D", "M"),
		asm.At(regAddr),
		asm.C("M", "D"),
		asm.AtInt(savedFrameSize),
		asm.C("A", "D-A"),
		asm.C("D", "M"),
		asm.At(regRet),
		asm.C("M", "D"),
	)

	// *ARG = pop(); the return value replaces the first argument.
	g.popD()
	g.emit(
		asm.At(regARG),
		asm.C("A", "M"),
		asm.C("M", "D"),
	)

	// SP = ARG + 1
	g.emit(
		asm.At(regARG),
		asm.C("D", "M+1"),
		asm.At(regSP),
		asm.C("M", "D"),
	)

	// Restore THAT, THIS, ARG, LCL. Each step decrements the frame cursor,
	// so the order is fixed.
	for _, reg := range []string{regTHAT, regTHIS, regARG, regLCL} {
		g.emit(
			asm.At(regAddr),
			asm.C("AM", "M-1"),
			asm.C("D", "M"),
			asm.At(reg),
			asm.C("M", "D"),
		)
	}

	g.emit(
		asm.At(regRet),
		asm.C("A", "M"),
		asm.CJ("0", "JMP"),
	)
}

// WriteBootstrap emits the program prologue: it initializes the stack
// pointer and transfers control to the entry function through the regular
// calling convention, so the entry function gets a well-formed frame and can
// return like any other callee.
func (g *Generator) WriteBootstrap() {
	g.emit(
		asm.Comment("bootstrap"),
		asm.AtInt(stackBase),
		asm.C("D", "A"),
		asm.At(regSP),
		asm.C("M", "D"),
	)
	g.genCall(entryFunction, 0)
}
