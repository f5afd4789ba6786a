package parser

import (
	"fmt"
	"strconv"

	"github.com/iley/hackvm/internal/lexer"
	"github.com/iley/hackvm/internal/vm"
)

var commandKinds = map[string]vm.CommandKind{
	"push":     vm.CMD_PUSH,
	"pop":      vm.CMD_POP,
	"add":      vm.CMD_ADD,
	"sub":      vm.CMD_SUB,
	"neg":      vm.CMD_NEG,
	"eq":       vm.CMD_EQ,
	"gt":       vm.CMD_GT,
	"lt":       vm.CMD_LT,
	"and":      vm.CMD_AND,
	"or":       vm.CMD_OR,
	"not":      vm.CMD_NOT,
	"label":    vm.CMD_LABEL,
	"goto":     vm.CMD_GOTO,
	"if-goto":  vm.CMD_IF_GOTO,
	"function": vm.CMD_FUNCTION,
	"call":     vm.CMD_CALL,
	"return":   vm.CMD_RETURN,
}

// ParseLine turns one tokenized source line into a typed command. Arity and
// operand syntax are validated here; segment index range checks belong to the
// code generator since they depend on the segment's addressing rule.
func ParseLine(line lexer.Line) (vm.Command, error) {
	kind, ok := commandKinds[line.Tokens[0]]
	if !ok {
		return vm.Command{}, fmt.Errorf("%s: unknown command %q", line.Loc, line.Tokens[0])
	}

	cmd := vm.Command{Kind: kind, Loc: line.Loc}

	switch kind {
	case vm.CMD_PUSH, vm.CMD_POP:
		if err := checkArity(line, 2); err != nil {
			return vm.Command{}, err
		}
		seg, err := vm.SegmentFromName(line.Tokens[1])
		if err != nil {
			return vm.Command{}, fmt.Errorf("%s: %w", line.Loc, err)
		}
		index, err := parseIndex(line.Loc, line.Tokens[2])
		if err != nil {
			return vm.Command{}, err
		}
		cmd.Segment = seg
		cmd.Index = index
	case vm.CMD_LABEL, vm.CMD_GOTO, vm.CMD_IF_GOTO:
		if err := checkArity(line, 1); err != nil {
			return vm.Command{}, err
		}
		if err := checkSymbol(line.Loc, line.Tokens[1]); err != nil {
			return vm.Command{}, err
		}
		cmd.Name = line.Tokens[1]
	case vm.CMD_FUNCTION, vm.CMD_CALL:
		if err := checkArity(line, 2); err != nil {
			return vm.Command{}, err
		}
		if err := checkSymbol(line.Loc, line.Tokens[1]); err != nil {
			return vm.Command{}, err
		}
		index, err := parseIndex(line.Loc, line.Tokens[2])
		if err != nil {
			return vm.Command{}, err
		}
		cmd.Name = line.Tokens[1]
		cmd.Index = index
	default:
		// Arithmetic, logical, comparison and return take no operands.
		if err := checkArity(line, 0); err != nil {
			return vm.Command{}, err
		}
	}

	return cmd, nil
}

func checkArity(line lexer.Line, want int) error {
	got := len(line.Tokens) - 1
	if got != want {
		return fmt.Errorf("%s: command %q expects %d operand(s), got %d",
			line.Loc, line.Tokens[0], want, got)
	}
	return nil
}

func parseIndex(loc lexer.Location, token string) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%s: expected a number, got %q", loc, token)
	}
	if index < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative number, got %d", loc, index)
	}
	return index, nil
}

// checkSymbol validates a label or function name. Names may contain letters,
// digits, underscore, dot and colon, and must not start with a digit. The
// dollar sign is reserved for generated scope qualifiers.
func checkSymbol(loc lexer.Location, name string) error {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '.', r == ':':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("%s: symbol %q must not start with a digit", loc, name)
			}
		default:
			return fmt.Errorf("%s: invalid character %q in symbol %q", loc, r, name)
		}
	}
	return nil
}
