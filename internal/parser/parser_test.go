package parser

import (
	"strings"
	"testing"

	"github.com/iley/hackvm/internal/lexer"
	"github.com/iley/hackvm/internal/vm"
)

func makeLine(tokens ...string) lexer.Line {
	return lexer.Line{
		Tokens: tokens,
		Loc:    lexer.Location{Filename: "test.vm", Line: 1},
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected vm.Command
	}{
		{
			name:     "push constant",
			tokens:   []string{"push", "constant", "7"},
			expected: vm.Command{Kind: vm.CMD_PUSH, Segment: vm.SEG_CONSTANT, Index: 7},
		},
		{
			name:     "pop local",
			tokens:   []string{"pop", "local", "2"},
			expected: vm.Command{Kind: vm.CMD_POP, Segment: vm.SEG_LOCAL, Index: 2},
		},
		{
			name:     "push static",
			tokens:   []string{"push", "static", "15"},
			expected: vm.Command{Kind: vm.CMD_PUSH, Segment: vm.SEG_STATIC, Index: 15},
		},
		{
			name:     "add",
			tokens:   []string{"add"},
			expected: vm.Command{Kind: vm.CMD_ADD},
		},
		{
			name:     "not",
			tokens:   []string{"not"},
			expected: vm.Command{Kind: vm.CMD_NOT},
		},
		{
			name:     "label",
			tokens:   []string{"label", "LOOP_START"},
			expected: vm.Command{Kind: vm.CMD_LABEL, Name: "LOOP_START"},
		},
		{
			name:     "goto",
			tokens:   []string{"goto", "END"},
			expected: vm.Command{Kind: vm.CMD_GOTO, Name: "END"},
		},
		{
			name:     "if-goto",
			tokens:   []string{"if-goto", "LOOP_START"},
			expected: vm.Command{Kind: vm.CMD_IF_GOTO, Name: "LOOP_START"},
		},
		{
			name:     "function",
			tokens:   []string{"function", "Main.fib", "2"},
			expected: vm.Command{Kind: vm.CMD_FUNCTION, Name: "Main.fib", Index: 2},
		},
		{
			name:     "call",
			tokens:   []string{"call", "Main.fib", "1"},
			expected: vm.Command{Kind: vm.CMD_CALL, Name: "Main.fib", Index: 1},
		},
		{
			name:     "return",
			tokens:   []string{"return"},
			expected: vm.Command{Kind: vm.CMD_RETURN},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := makeLine(tt.tokens...)
			got, err := ParseLine(line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.expected.Loc = line.Loc
			if got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantErr string
	}{
		{
			name:    "unknown command",
			tokens:  []string{"mul"},
			wantErr: "unknown command",
		},
		{
			name:    "unknown segment",
			tokens:  []string{"push", "global", "1"},
			wantErr: "unknown segment",
		},
		{
			name:    "push missing index",
			tokens:  []string{"push", "constant"},
			wantErr: "expects 2 operand(s)",
		},
		{
			name:    "push extra operand",
			tokens:  []string{"push", "constant", "1", "2"},
			wantErr: "expects 2 operand(s)",
		},
		{
			name:    "arithmetic with operand",
			tokens:  []string{"add", "1"},
			wantErr: "expects 0 operand(s)",
		},
		{
			name:    "label without name",
			tokens:  []string{"label"},
			wantErr: "expects 1 operand(s)",
		},
		{
			name:    "non-numeric index",
			tokens:  []string{"push", "constant", "seven"},
			wantErr: "expected a number",
		},
		{
			name:    "negative index",
			tokens:  []string{"push", "constant", "-1"},
			wantErr: "non-negative",
		},
		{
			name:    "negative locals count",
			tokens:  []string{"function", "Main.main", "-2"},
			wantErr: "non-negative",
		},
		{
			name:    "label starting with a digit",
			tokens:  []string{"label", "1LOOP"},
			wantErr: "must not start with a digit",
		},
		{
			name:    "label with a dollar sign",
			tokens:  []string{"label", "LOOP$1"},
			wantErr: "invalid character",
		},
		{
			name:    "function name with a space-adjacent bad rune",
			tokens:  []string{"function", "Main,main", "0"},
			wantErr: "invalid character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(makeLine(tt.tokens...))
			if err == nil {
				t.Fatalf("expected an error, got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "test.vm:1") {
				t.Errorf("error %q does not carry the source location", err)
			}
		})
	}
}
