package vm

import "fmt"

type Segment int

// Memory segments
const (
	SEG_CONSTANT Segment = iota
	SEG_LOCAL
	SEG_ARGUMENT
	SEG_THIS
	SEG_THAT
	SEG_POINTER
	SEG_TEMP
	SEG_STATIC
)

// tempBase is the fixed RAM address of the first temp cell.
const tempBase = 5

// tempSize is the number of cells in the temp scratch block.
const tempSize = 8

var segmentNames = map[string]Segment{
	"constant": SEG_CONSTANT,
	"local":    SEG_LOCAL,
	"argument": SEG_ARGUMENT,
	"this":     SEG_THIS,
	"that":     SEG_THAT,
	"pointer":  SEG_POINTER,
	"temp":     SEG_TEMP,
	"static":   SEG_STATIC,
}

func (s Segment) String() string {
	for name, seg := range segmentNames {
		if seg == s {
			return name
		}
	}
	return "unknown"
}

func SegmentFromName(name string) (Segment, error) {
	seg, ok := segmentNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown segment %q", name)
	}
	return seg, nil
}

// BaseRegister returns the register symbol holding the segment's base address.
// Only local, argument, this and that are register-indirected.
func (s Segment) BaseRegister() string {
	switch s {
	case SEG_LOCAL:
		return "LCL"
	case SEG_ARGUMENT:
		return "ARG"
	case SEG_THIS:
		return "THIS"
	case SEG_THAT:
		return "THAT"
	default:
		return ""
	}
}

// TempAddress returns the fixed RAM address for temp cell index.
func TempAddress(index int) int {
	return tempBase + index
}

// PointerAlias returns the register aliased by pointer 0 or 1.
func PointerAlias(index int) string {
	if index == 0 {
		return "THIS"
	}
	return "THAT"
}

// CheckIndex validates a push/pop index against the segment's addressing
// rule. The caller reports the error with a source location attached.
func (s Segment) CheckIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("segment %s index must not be negative, got %d", s, index)
	}
	switch s {
	case SEG_POINTER:
		if index > 1 {
			return fmt.Errorf("pointer index must be 0 or 1, got %d", index)
		}
	case SEG_TEMP:
		if index >= tempSize {
			return fmt.Errorf("temp index must be in [0,%d], got %d", tempSize-1, index)
		}
	}
	return nil
}
