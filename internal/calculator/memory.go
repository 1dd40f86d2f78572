package calculator

import (
	"fmt"
	"strings"
)

// MemoryOp is one of the memory register keys.
type MemoryOp string

const (
	MemoryClear    MemoryOp = "MC"
	MemoryRecall   MemoryOp = "MR"
	MemoryAdd      MemoryOp = "M+"
	MemorySubtract MemoryOp = "M-"
)

// Valid reports whether op is a known memory key.
func (op MemoryOp) Valid() bool {
	switch op {
	case MemoryClear, MemoryRecall, MemoryAdd, MemorySubtract:
		return true
	}
	return false
}

// State is the calculator display together with the memory register.
type State struct {
	Display string  `json:"display"`
	Memory  float64 `json:"memory"`
}

// ApplyMemory runs op against s. M+ and M- evaluate the display first and
// leave memory untouched when it does not evaluate.
func ApplyMemory(s State, op MemoryOp, mode AngleMode) (State, error) {
	switch op {
	case MemoryClear:
		s.Memory = 0
	case MemoryRecall:
		recalled := FormatNumber(s.Memory)
		if s.Display == "" || s.Display == "0" || s.Display == ErrorDisplay {
			s.Display = recalled
		} else {
			s.Display += recalled
		}
	case MemoryAdd, MemorySubtract:
		v, err := Compute(s.Display, mode)
		if err != nil {
			return s, nil
		}
		if op == MemoryAdd {
			s.Memory += v
		} else {
			s.Memory -= v
		}
	default:
		return s, fmt.Errorf("unknown memory operation %q", strings.TrimSpace(string(op)))
	}
	return s, nil
}

// HistoryEntry formats one line of the history tape.
func HistoryEntry(input, result string) string {
	return input + " = " + result
}
