package wrecked

import (
	"errors"
	"fmt"
)

// Sentinel errors for this package's error taxonomy. Compare against
// these with errors.Is; operations that need to embed a handle or
// position wrap one of these with fmt.Errorf("%w: ...").
var (
	ErrNotFound       = errors.New("no rect with given handle")
	ErrNoParent       = errors.New("rect has no parent")
	ErrParentNotFound = errors.New("rect's parent handle is absent from the store")
	ErrChildNotFound  = errors.New("child not found among parent's children")
	ErrBadPosition    = errors.New("position out of bounds")
	ErrBadColor       = errors.New("not a valid color")
	ErrInvalidUTF8    = errors.New("invalid utf8")
	ErrStringTooLong  = errors.New("string too long for destination rect")
	ErrCycle          = errors.New("attach would create a cycle")
)

func notFoundErr(h Handle) error {
	return fmt.Errorf("%w: %d", ErrNotFound, h)
}

func parentNotFoundErr(h, parent Handle) error {
	return fmt.Errorf("%w: rect %d references parent %d", ErrParentNotFound, h, parent)
}

func childNotFoundErr(parent, child Handle) error {
	return fmt.Errorf("%w: %d is not a child of %d", ErrChildNotFound, child, parent)
}

func badPositionErr(h Handle, x, y int) error {
	return fmt.Errorf("%w: (%d,%d) in rect %d", ErrBadPosition, x, y, h)
}

func cycleErr(h, newParent Handle) error {
	return fmt.Errorf("%w: %d is an ancestor of %d", ErrCycle, h, newParent)
}
