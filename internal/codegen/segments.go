package codegen

import (
	"fmt"

	"github.com/iley/hackvm/internal/asm"
	"github.com/iley/hackvm/internal/vm"
)

// staticSymbol qualifies a static index with the current file's base name so
// that identically-indexed statics in different files land in different
// cells. The downstream assembler allocates the actual addresses.
func (g *Generator) staticSymbol(index int) string {
	return fmt.Sprintf("%s.%d", g.fileBase, index)
}

func (g *Generator) genPush(cmd vm.Command) error {
	if err := cmd.Segment.CheckIndex(cmd.Index); err != nil {
		return fmt.Errorf("%s: %w", cmd.Loc, err)
	}

	switch cmd.Segment {
	case vm.SEG_CONSTANT:
		// No memory access: the literal itself goes into D.
		g.emit(
			asm.AtInt(cmd.Index),
			asm.C("D", "A"),
		)
	case vm.SEG_LOCAL, vm.SEG_ARGUMENT, vm.SEG_THIS, vm.SEG_THAT:
		g.emit(
			asm.AtInt(cmd.Index),
			asm.C("D", "A"),
			asm.At(cmd.Segment.BaseRegister()),
			asm.C("A", "D+M"),
			asm.C("D", "M"),
		)
	case vm.SEG_POINTER:
		g.emit(
			asm.At(vm.PointerAlias(cmd.Index)),
			asm.C("D", "M"),
		)
	case vm.SEG_TEMP:
		g.emit(
			asm.AtInt(vm.TempAddress(cmd.Index)),
			asm.C("D", "M"),
		)
	case vm.SEG_STATIC:
		g.emit(
			asm.At(g.staticSymbol(cmd.Index)),
			asm.C("D", "M"),
		)
	}

	g.pushD()
	return nil
}

func (g *Generator) genPop(cmd vm.Command) error {
	if err := cmd.Segment.CheckIndex(cmd.Index); err != nil {
		return fmt.Errorf("%s: %w", cmd.Loc, err)
	}

	switch cmd.Segment {
	case vm.SEG_CONSTANT:
		return fmt.Errorf("%s: cannot pop into the constant segment", cmd.Loc)
	case vm.SEG_LOCAL, vm.SEG_ARGUMENT, vm.SEG_THIS, vm.SEG_THAT:
		// The target address is computed up front into R13 because the pop
		// itself needs D.
		g.emit(
			asm.AtInt(cmd.Index),
			asm.C("D", "A"),
			asm.At(cmd.Segment.BaseRegister()),
			asm.C("D", "D+M"),
			asm.At(regAddr),
			asm.C("M", "D"),
		)
		g.popD()
		g.emit(
			asm.At(regAddr),
			asm.C("A", "M"),
			asm.C("M", "D"),
		)
	case vm.SEG_POINTER:
		g.popD()
		g.emit(
			asm.At(vm.PointerAlias(cmd.Index)),
			asm.C("M", "D"),
		)
	case vm.SEG_TEMP:
		g.popD()
		g.emit(
			asm.AtInt(vm.TempAddress(cmd.Index)),
			asm.C("M", "D"),
		)
	case vm.SEG_STATIC:
		g.popD()
		g.emit(
			asm.At(g.staticSymbol(cmd.Index)),
			asm.C("M", "D"),
		)
	}

	return nil
}
