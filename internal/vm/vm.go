package vm

import (
	"fmt"

	"github.com/iley/hackvm/internal/lexer"
)

type CommandKind int

// Command kinds
const (
	CMD_PUSH CommandKind = iota
	CMD_POP
	CMD_ADD
	CMD_SUB
	CMD_NEG
	CMD_EQ
	CMD_GT
	CMD_LT
	CMD_AND
	CMD_OR
	CMD_NOT
	CMD_LABEL
	CMD_GOTO
	CMD_IF_GOTO
	CMD_FUNCTION
	CMD_CALL
	CMD_RETURN
)

func (k CommandKind) String() string {
	switch k {
	case CMD_PUSH:
		return "push"
	case CMD_POP:
		return "pop"
	case CMD_ADD:
		return "add"
	case CMD_SUB:
		return "sub"
	case CMD_NEG:
		return "neg"
	case CMD_EQ:
		return "eq"
	case CMD_GT:
		return "gt"
	case CMD_LT:
		return "lt"
	case CMD_AND:
		return "and"
	case CMD_OR:
		return "or"
	case CMD_NOT:
		return "not"
	case CMD_LABEL:
		return "label"
	case CMD_GOTO:
		return "goto"
	case CMD_IF_GOTO:
		return "if-goto"
	case CMD_FUNCTION:
		return "function"
	case CMD_CALL:
		return "call"
	case CMD_RETURN:
		return "return"
	default:
		return "unknown"
	}
}

// IsComparison reports whether the command is eq, gt or lt. Those are the
// only commands that mint branch labels during code generation.
func (k CommandKind) IsComparison() bool {
	return k == CMD_EQ || k == CMD_GT || k == CMD_LT
}

// Command is one parsed VM instruction. It is produced once by the parser and
// never mutated afterwards.
//
// Operand usage by kind:
//   - push/pop: Segment and Index are set.
//   - label/goto/if-goto: Name holds the label.
//   - function: Name holds the function name, Index holds nLocals.
//   - call: Name holds the callee, Index holds nArgs.
//   - everything else: no operands.
type Command struct {
	Kind    CommandKind
	Segment Segment
	Name    string
	Index   int
	Loc     lexer.Location
}

func (c Command) String() string {
	switch c.Kind {
	case CMD_PUSH, CMD_POP:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Segment, c.Index)
	case CMD_LABEL, CMD_GOTO, CMD_IF_GOTO:
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	case CMD_FUNCTION, CMD_CALL:
		return fmt.Sprintf("%s %s %d", c.Kind, c.Name, c.Index)
	default:
		return c.Kind.String()
	}
}
