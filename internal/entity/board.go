package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

const (
	BoardSize = 3

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// WinLines - all eight winning lines as (row, col) triples:
// three rows, three columns, two diagonals.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid. The zero value is an empty board.
type Board [BoardSize][BoardSize]string

// Move is a (row, col) pair, each in [0,2].
type Move struct {
	Row int
	Col int
}

// PlaceMark - puts mark into the given cell. A rejected move leaves
// the grid untouched.
func (that *Board) PlaceMark(row, col int, mark string) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrOutOfBounds, row, col)
	}

	if that[row][col] != EmptyCell {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = mark

	return nil
}

// Winner - returns the mark completing any line, or EmptyCell if none.
func (that *Board) Winner() string {
	for _, line := range WinLines {
		a := that[line[0][0]][line[0][1]]
		b := that[line[1][0]][line[1][1]]
		c := that[line[2][0]][line[2][1]]

		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsFull - reports whether no empty cell remains.
func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// EmptyCells - returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)

	for row := range that {
		for col, cell := range that[row] {
			if cell == EmptyCell {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}

	return cells
}

// String - renders the grid as plain text, one line per row with
// "---------" separators between rows.
func (that Board) String() string {
	lines := make([]string, 0, BoardSize)

	for _, row := range that {
		cells := make([]string, 0, BoardSize)
		for _, cell := range row {
			if cell == EmptyCell {
				cell = " "
			}
			cells = append(cells, cell)
		}

		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.Join(lines, "\n---------\n")
}
