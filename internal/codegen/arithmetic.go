package codegen

import (
	"fmt"

	"github.com/iley/hackvm/internal/asm"
)

// genBinary pops the right operand into D, then computes comp against the
// left operand in place, leaving the result as the new stack top. Net stack
// pointer effect: -1.
func (g *Generator) genBinary(comp string) {
	g.popD()
	g.emit(
		asm.C("A", "A-1"),
		asm.C("M", comp),
	)
}

// genUnary rewrites the top cell in place. No stack pointer movement.
func (g *Generator) genUnary(comp string) {
	g.emit(
		asm.At(regSP),
		asm.C("A", "M-1"),
		asm.C("M", comp),
	)
}

// genComparison pops both operands, computes left-right and branches on the
// sign via jump (JEQ/JGT/JLT). The true block pushes -1 (all bits set), the
// false block pushes 0; both converge on a shared end label and the stack
// pointer advances once.
//
// Every call mints a fresh label triple from the comparison counter. Reusing
// a label across two comparison sites would silently corrupt control flow in
// the flattened output, so the counter is never reset during a run.
func (g *Generator) genComparison(jump string) {
	n := g.cmpCount
	g.cmpCount++

	trueLabel := fmt.Sprintf("CMP_TRUE_%d", n)
	falseLabel := fmt.Sprintf("CMP_FALSE_%d", n)
	endLabel := fmt.Sprintf("CMP_END_%d", n)

	g.popD()
	g.emit(
		asm.At(regSP),
		asm.C("AM", "M-1"),
		asm.C("D", "M-D"),
		asm.At(trueLabel),
		asm.CJ("D", jump),
		asm.Label(falseLabel),
		asm.At(regSP),
		asm.C("A", "M"),
		asm.C("M", "0"),
		asm.At(endLabel),
		asm.CJ("0", "JMP"),
		asm.Label(trueLabel),
		asm.At(regSP),
		asm.C("A", "M"),
		asm.C("M", "-1"),
		asm.Label(endLabel),
		asm.At(regSP),
		asm.C("M", "M+1"),
	)
}
