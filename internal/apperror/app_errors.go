package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is the kind every rejected move maps to; the
	// sub-reasons below wrap it so callers can match on either level.
	ErrInvalidMove = errors.New("invalid move")

	ErrOutOfBounds  = fmt.Errorf("%w: out of bounds", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)

	ErrGameFinished = errors.New("game is already finished")
	ErrCorruptSave  = errors.New("corrupt save file")
)
