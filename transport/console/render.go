package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const thinkingDelay = 700 * time.Millisecond

var (
	titleStyle = color.New(color.FgCyan, color.Bold).SprintFunc()
	errorStyle = color.New(color.FgRed, color.Bold).SprintFunc()

	markStyles = map[string]func(a ...interface{}) string{
		entity.PlayerX: color.New(color.FgRed, color.Bold).SprintFunc(),
		entity.PlayerO: color.New(color.FgBlue, color.Bold).SprintFunc(),
	}
)

// renderBoard - colors the marks cell by cell; the grid layout itself
// comes from Board.String.
func (that *Server) renderBoard(board entity.Board) string {
	lines := make([]string, 0, entity.BoardSize)

	for _, row := range board {
		cells := make([]string, 0, entity.BoardSize)

		for _, cell := range row {
			if cell == entity.EmptyCell {
				cells = append(cells, " ")
				continue
			}

			cells = append(cells, markStyles[cell](cell))
		}

		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.Join(lines, "\n---------\n")
}

// showThinking - spins briefly so the computer's move doesn't land
// instantly; purely cosmetic.
func (that *Server) showThinking(name string) {
	indicator := spinner.New(
		spinner.CharSets[14],
		120*time.Millisecond,
		spinner.WithWriter(that.out),
		spinner.WithSuffix(fmt.Sprintf(" %s is making a move...", name)),
	)

	indicator.Start()
	time.Sleep(thinkingDelay)
	indicator.Stop()
}
