package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/game"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
)

const (
	choiceNewGame = "1"
	choiceLoad    = "2"
	choiceExit    = "3"

	modeSingleplayer = "1"
	modeMultiplayer  = "2"
)

// Server drives the interactive terminal session: menu, per-turn
// prompts and rendering. It is the only writer to the terminal; the
// game core never prints.
type Server struct {
	logger *slog.Logger
	repo   repository.GameRepository

	in  *bufio.Reader
	out io.Writer
	rng *rand.Rand
}

func New(logger *slog.Logger, repo repository.GameRepository, in io.Reader, out io.Writer) *Server {
	return &Server{
		logger: logger,
		repo:   repo,

		in:  bufio.NewReader(in),
		out: out,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint: gosec // not a security context
	}
}

// Start - runs the menu loop until the user exits or input ends.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("component", "console")

	fmt.Fprintln(that.out, titleStyle("Welcome to Tic-Tac-Toe!"))

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := that.promptChoice(
			"\nSelect option:\n"+
				"1. New Game\n"+
				"2. Load Saved Game\n"+
				"3. Exit\n"+
				"Enter 1, 2 or 3: ",
			choiceNewGame, choiceLoad, choiceExit,
		)
		if err != nil {
			log.Debug("input ended", "error", err)
			return nil
		}

		var session *game.Session

		switch choice {
		case choiceNewGame:
			session, err = that.newSession()
		case choiceLoad:
			session, err = that.loadSession(ctx)
		case choiceExit:
			fmt.Fprintln(that.out, "Exiting the game...")
			return nil
		}

		if err != nil {
			if !that.reportMenuError(err) {
				return err
			}
			continue
		}

		if err = that.playGame(ctx, session); err != nil {
			log.Debug("game ended early", "error", err)
			return nil
		}

		again, err := that.promptChoice("\nDo you want to play another game? (yes/no): ", "yes", "no")
		if err != nil || again == "no" {
			fmt.Fprintln(that.out, "\nThanks for playing!")
			return nil
		}
	}
}

// newSession - asks for the game mode and starts a fresh game.
func (that *Server) newSession() (*game.Session, error) {
	playerX, playerO, err := that.promptPlayers()
	if err != nil {
		return nil, err
	}

	return game.NewSession(that.logger, that.repo, playerX, playerO), nil
}

// loadSession - resumes the autosave. The snapshot stores only the
// grid and the turn marker, so the mode is asked again; the save is
// checked first so a broken one fails before any prompt.
func (that *Server) loadSession(ctx context.Context) (*game.Session, error) {
	restored, err := that.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if restored.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	playerX, playerO, err := that.promptPlayers()
	if err != nil {
		return nil, err
	}

	session, err := game.LoadSession(ctx, that.logger, that.repo, playerX, playerO)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(that.out, "\nLoaded saved game successfully!")

	return session, nil
}

func (that *Server) promptPlayers() (player.Player, player.Player, error) {
	mode, err := that.promptChoice(
		"\nSelect mode:\n"+
			"1. Singleplayer (vs Computer)\n"+
			"2. Multiplayer (2 Humans)\n"+
			"Enter 1 or 2: ",
		modeSingleplayer, modeMultiplayer,
	)
	if err != nil {
		return nil, nil, err
	}

	if mode == modeSingleplayer {
		return player.NewHumanPlayer("Player", entity.PlayerX, that.in, that.out),
			player.NewComputerPlayer("Computer", entity.PlayerO, that.rng),
			nil
	}

	return player.NewHumanPlayer("Player 1", entity.PlayerX, that.in, that.out),
		player.NewHumanPlayer("Player 2", entity.PlayerO, that.in, that.out),
		nil
}

// playGame - runs the turn loop until the game reaches a terminal
// state. Invalid moves are reported and the same player retries.
func (that *Server) playGame(ctx context.Context, session *game.Session) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintf(that.out, "\n%s\n", that.renderBoard(session.Game().Board))

		active := session.CurrentPlayer()
		if !active.IsHuman() {
			that.showThinking(active.Name())
		}

		err := session.PlayTurn(ctx)

		if game.IsRecoverable(err) {
			fmt.Fprintln(that.out, errorStyle("Error:"), err)
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to play turn: %w", err)
		}

		if session.Game().IsFinished() {
			that.announceResult(session)
			return nil
		}
	}
}

func (that *Server) announceResult(session *game.Session) {
	finished := session.Game()

	fmt.Fprintf(that.out, "\n%s\n", that.renderBoard(finished.Board))

	if finished.Winner == entity.PlayerTie {
		fmt.Fprintln(that.out, "\nIt's a draw!")
		return
	}

	winner := session.PlayerByMark(finished.Winner)
	fmt.Fprintf(that.out, "\n%s wins!\n", winner.Name())
}

// reportMenuError - explains a failed menu action and reports whether
// the menu can carry on. Load failures always fall back to the menu.
func (that *Server) reportMenuError(err error) bool {
	switch {
	case errors.Is(err, repository.ErrSaveNotFound):
		fmt.Fprintln(that.out, "\nNo saved game found. Please choose to start a new game, or exit if you wish.")
	case errors.Is(err, apperror.ErrGameFinished):
		fmt.Fprintln(that.out, "\nCannot load saved game: it is already finished!")
		fmt.Fprintln(that.out, "Please choose to start a new game instead, or exit if you wish.")
	case errors.Is(err, apperror.ErrCorruptSave):
		fmt.Fprintln(that.out, "\nSaved game is corrupt and cannot be loaded.")
		fmt.Fprintln(that.out, "Please choose to start a new game instead, or exit if you wish.")
	default:
		return false
	}

	return true
}

// promptChoice - re-prompts until one of the expected answers comes
// in. Answers are matched case-insensitively.
func (that *Server) promptChoice(prompt string, expected ...string) (string, error) {
	for {
		fmt.Fprint(that.out, prompt)

		line, err := that.in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read choice: %w", err)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		for _, candidate := range expected {
			if answer == candidate {
				return answer, nil
			}
		}
	}
}
