package translator

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// hackMachine is a minimal Hack computer emulator, just enough to execute
// translated programs in tests. It supports A-instructions, C-instructions
// and label resolution with the standard predefined symbols.
type hackMachine struct {
	ram  map[int]int
	d    int
	a    int
	pc   int
	prog []string
}

var predefinedSymbols = map[string]int{
	"SP":   0,
	"LCL":  1,
	"ARG":  2,
	"THIS": 3,
	"THAT": 4,
}

func init() {
	for i := 0; i <= 15; i++ {
		predefinedSymbols[fmt.Sprintf("R%d", i)] = i
	}
}

func newHackMachine(t *testing.T, asmText string) *hackMachine {
	t.Helper()

	symbols := make(map[string]int)
	for name, addr := range predefinedSymbols {
		symbols[name] = addr
	}

	// First pass: strip comments, collect label addresses.
	var prog []string
	for _, raw := range strings.Split(asmText, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "(") {
			label := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
			if _, ok := symbols[label]; ok {
				t.Fatalf("label %s defined twice", label)
			}
			symbols[label] = len(prog)
			continue
		}
		prog = append(prog, line)
	}

	// Second pass: resolve the remaining symbols to variable addresses.
	nextVar := 16
	for i, line := range prog {
		if !strings.HasPrefix(line, "@") {
			continue
		}
		symbol := line[1:]
		if _, err := strconv.Atoi(symbol); err == nil {
			continue
		}
		if _, ok := symbols[symbol]; !ok {
			symbols[symbol] = nextVar
			nextVar++
		}
		prog[i] = "@" + strconv.Itoa(symbols[symbol])
	}

	return &hackMachine{
		ram:  make(map[int]int),
		prog: prog,
	}
}

// run executes at most maxSteps instructions and stops early when the
// program counter leaves the program.
func (m *hackMachine) run(t *testing.T, maxSteps int) {
	t.Helper()
	for steps := 0; steps < maxSteps; steps++ {
		if m.pc < 0 || m.pc >= len(m.prog) {
			return
		}
		m.step(t)
	}
}

func (m *hackMachine) step(t *testing.T) {
	t.Helper()
	line := m.prog[m.pc]

	if strings.HasPrefix(line, "@") {
		value, err := strconv.Atoi(line[1:])
		if err != nil {
			t.Fatalf("unresolved A-instruction %q", line)
		}
		m.a = value
		m.pc++
		return
	}

	dest, rest := "", line
	if idx := strings.Index(line, "="); idx >= 0 {
		dest, rest = line[:idx], line[idx+1:]
	}
	comp, jump := rest, ""
	if idx := strings.Index(rest, ";"); idx >= 0 {
		comp, jump = rest[:idx], rest[idx+1:]
	}

	value := m.eval(t, comp)

	// The memory write goes to the address in A before the instruction.
	oldA := m.a
	if strings.Contains(dest, "A") {
		m.a = value
	}
	if strings.Contains(dest, "D") {
		m.d = value
	}
	if strings.Contains(dest, "M") {
		m.ram[oldA] = value
	}

	if jump != "" && m.shouldJump(t, jump, value) {
		m.pc = m.a
	} else {
		m.pc++
	}
}

func (m *hackMachine) eval(t *testing.T, comp string) int {
	t.Helper()
	mem := m.ram[m.a]
	switch comp {
	case "0":
		return 0
	case "1":
		return 1
	case "-1":
		return -1
	case "D":
		return m.d
	case "A":
		return m.a
	case "M":
		return mem
	case "!D":
		return ^m.d
	case "!M":
		return ^mem
	case "-D":
		return -m.d
	case "-M":
		return -mem
	case "D+1":
		return m.d + 1
	case "A+1":
		return m.a + 1
	case "M+1":
		return mem + 1
	case "D-1":
		return m.d - 1
	case "A-1":
		return m.a - 1
	case "M-1":
		return mem - 1
	case "D+A":
		return m.d + m.a
	case "D+M":
		return m.d + mem
	case "D-A":
		return m.d - m.a
	case "D-M":
		return m.d - mem
	case "A-D":
		return m.a - m.d
	case "M-D":
		return mem - m.d
	case "D&M":
		return m.d & mem
	case "D|M":
		return m.d | mem
	default:
		t.Fatalf("unsupported computation %q", comp)
		return 0
	}
}

func (m *hackMachine) shouldJump(t *testing.T, jump string, value int) bool {
	t.Helper()
	switch jump {
	case "JGT":
		return value > 0
	case "JEQ":
		return value == 0
	case "JGE":
		return value >= 0
	case "JLT":
		return value < 0
	case "JNE":
		return value != 0
	case "JLE":
		return value <= 0
	case "JMP":
		return true
	default:
		t.Fatalf("unsupported jump %q", jump)
		return false
	}
}

// sp returns the emulated stack pointer.
func (m *hackMachine) sp() int {
	return m.ram[0]
}

// top returns the value just below the stack pointer.
func (m *hackMachine) top() int {
	return m.ram[m.sp()-1]
}
