package core

import (
	"errors"
	"fmt"
)

// Drawing errors. All of them are user input validation failures.
var (
	ErrSelfConnection       = errors.New("cannot connect a node instance to itself")
	ErrInvalidTemporalOrder = errors.New("invalid temporal connection")
	ErrDuplicatePath        = errors.New("path already exists")
	ErrDrawingCancelled     = errors.New("path drawing cancelled")
)

// CheckConnection reports whether a path from -> to may be added to paths.
//
// Connections between different variables must stay in the same period or
// step exactly one period forward. A variable may carry over to itself in
// any strictly later period.
func CheckConnection(from, to NodeID, paths []Path) error {
	if from == to {
		return ErrSelfConnection
	}

	if from.VariableID == to.VariableID {
		if to.Period <= from.Period {
			return fmt.Errorf("%w: carry-over must target a later period", ErrInvalidTemporalOrder)
		}
	} else if to.Period < from.Period || to.Period > from.Period+1 {
		return fmt.Errorf("%w: only the same or the immediate next period is allowed", ErrInvalidTemporalOrder)
	}

	if HasPath(paths, from, to) {
		return ErrDuplicatePath
	}
	return nil
}

// HasPath reports whether paths already contains the directed edge from -> to.
func HasPath(paths []Path, from, to NodeID) bool {
	for _, p := range paths {
		if p.From == from && p.To == to {
			return true
		}
	}
	return false
}
