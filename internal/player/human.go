package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// HumanPlayer reads moves from an external input source, re-prompting
// until it gets a syntactically valid pair of integers. It blocks
// indefinitely on a silent human; only a reader failure (EOF) ends
// the prompt loop.
type HumanPlayer struct {
	name string
	mark string

	in  *bufio.Reader
	out io.Writer
}

func NewHumanPlayer(name, mark string, in *bufio.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		name: name,
		mark: mark,
		in:   in,
		out:  out,
	}
}

func (that *HumanPlayer) Name() string { return that.name }

func (that *HumanPlayer) Mark() string { return that.mark }

func (that *HumanPlayer) IsHuman() bool { return true }

func (that *HumanPlayer) ChooseMove(_ *entity.Board) (entity.Move, error) {
	row, err := that.promptInt("row")
	if err != nil {
		return entity.Move{}, err
	}

	col, err := that.promptInt("column")
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{Row: row, Col: col}, nil
}

// promptInt - asks for one integer until the input parses. Malformed
// input re-prompts; it never fails the turn.
func (that *HumanPlayer) promptInt(field string) (int, error) {
	for {
		fmt.Fprintf(that.out, "%s (%s) - enter %s (0-2): ", that.name, that.mark, field)

		line, err := that.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read %s: %w", field, err)
		}

		value, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(that.out, "Invalid input. Please enter a number.")
			continue
		}

		return value, nil
	}
}
