package asm

import (
	"fmt"
	"io"
)

// Format renders instructions as Hack assembly text, one per line, in the
// exact order given.
func Format(out io.Writer, instrs []Instr) {
	for _, instr := range instrs {
		formatInstr(out, instr)
	}
}

func formatInstr(out io.Writer, instr Instr) {
	switch {
	case instr.Label != "":
		fmt.Fprintf(out, "(%s)", instr.Label)
	case instr.Symbol != "":
		fmt.Fprintf(out, "@%s", instr.Symbol)
	case instr.Comp != "":
		if instr.Dest != "" {
			fmt.Fprintf(out, "%s=%s", instr.Dest, instr.Comp)
		} else {
			fmt.Fprint(out, instr.Comp)
		}
		if instr.Jump != "" {
			fmt.Fprintf(out, ";%s", instr.Jump)
		}
	}

	if instr.Comment != "" {
		if instr.Label != "" || instr.Symbol != "" || instr.Comp != "" {
			fmt.Fprint(out, " ")
		}
		fmt.Fprintf(out, "// %s", instr.Comment)
	}

	fmt.Fprint(out, "\n")
}
