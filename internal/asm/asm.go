package asm

import "strconv"

// Instr is one line of Hack assembly: either an A-instruction (@symbol or
// @value), a C-instruction (dest=comp;jump), or a label pseudo-instruction.
// A standalone comment line has only the Comment field set.
type Instr struct {
	Comment string
	Label   string
	Symbol  string // A-instruction target, symbolic or numeric
	Dest    string
	Comp    string
	Jump    string
}

// At builds an A-instruction addressing a symbol.
func At(symbol string) Instr {
	return Instr{Symbol: symbol}
}

// AtInt builds an A-instruction loading a literal value.
func AtInt(value int) Instr {
	return Instr{Symbol: strconv.Itoa(value)}
}

// C builds a C-instruction without a jump, e.g. C("D", "M") is D=M.
func C(dest, comp string) Instr {
	return Instr{Dest: dest, Comp: comp}
}

// CJ builds a C-instruction with a jump, e.g. CJ("D", "JGT") is D;JGT.
func CJ(comp, jump string) Instr {
	return Instr{Comp: comp, Jump: jump}
}

// Label builds a label pseudo-instruction, rendered as (NAME).
func Label(name string) Instr {
	return Instr{Label: name}
}

// Comment builds a standalone comment line.
func Comment(text string) Instr {
	return Instr{Comment: text}
}
