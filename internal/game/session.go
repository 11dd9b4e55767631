package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/player"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
)

// Session is the game controller for one match: it owns the game
// state and both players, alternates turns and autosaves after every
// accepted move.
type Session struct {
	logger *slog.Logger
	repo   repository.GameRepository

	game    *entity.Game
	players [2]player.Player
	current int
}

// NewSession - starts a fresh game; playerX moves first.
func NewSession(logger *slog.Logger, repo repository.GameRepository, playerX, playerO player.Player) *Session {
	return &Session{
		logger:  logger,
		repo:    repo,
		game:    entity.NewGame(),
		players: [2]player.Player{playerX, playerO},
		current: 0,
	}
}

// LoadSession - resumes the autosaved game. A snapshot whose
// recomputed state is already terminal cannot be resumed and fails
// with apperror.ErrGameFinished; the caller falls back to the menu.
func LoadSession(ctx context.Context, logger *slog.Logger, repo repository.GameRepository, playerX, playerO player.Player) (*Session, error) {
	restored, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if restored.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	session := &Session{
		logger:  logger,
		repo:    repo,
		game:    restored,
		players: [2]player.Player{playerX, playerO},
	}

	if restored.Turn == playerO.Mark() {
		session.current = 1
	}

	return session, nil
}

func (that *Session) Game() *entity.Game {
	return that.game
}

func (that *Session) CurrentPlayer() player.Player {
	return that.players[that.current]
}

// PlayerByMark - returns the configured player carrying mark, or nil.
func (that *Session) PlayerByMark(mark string) player.Player {
	for _, participant := range that.players {
		if participant.Mark() == mark {
			return participant
		}
	}

	return nil
}

// SwitchPlayer - toggles the active player and the turn marker.
// Composed twice it is the identity.
func (that *Session) SwitchPlayer() {
	that.current = 1 - that.current
	that.game.Turn = entity.ToggleMark(that.game.Turn)
}

// PlayTurn - runs one turn for the active player. An invalid move is
// returned to the caller with the state and the active player
// unchanged, so the same player is re-solicited. A failed autosave is
// logged and play continues; the in-memory game stays authoritative.
func (that *Session) PlayTurn(ctx context.Context) error {
	log := that.logger.With("component", "session")

	if that.game.IsFinished() {
		return apperror.ErrGameFinished
	}

	active := that.CurrentPlayer()

	move, err := active.ChooseMove(&that.game.Board)
	if err != nil {
		return fmt.Errorf("failed to choose move: %w", err)
	}

	if err = that.game.Board.PlaceMark(move.Row, move.Col, active.Mark()); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.game.UpdateState()

	// A finished game cannot be resumed, so the terminal move clears
	// the autosave slot instead of writing a snapshot nobody can load.
	if that.game.IsFinished() {
		that.deleteSave(ctx)
		return nil
	}

	that.SwitchPlayer()

	if err = that.repo.Save(ctx, that.game); err != nil {
		log.Warn("autosave failed, continuing with in-memory state", "error", err)
	}

	return nil
}

// IsRecoverable - reports whether a PlayTurn error means the same
// player should simply retry.
func IsRecoverable(err error) bool {
	return errors.Is(err, apperror.ErrInvalidMove)
}

// deleteSave - clears the autosave once the game is over; a finished
// game must not be resumable from the menu.
func (that *Session) deleteSave(ctx context.Context) {
	log := that.logger.With("component", "session")

	err := that.repo.Delete(ctx)
	if err != nil && !errors.Is(err, repository.ErrSaveNotFound) {
		log.Warn("failed to delete finished game", "error", err)
		return
	}

	log.Debug("finished game removed from storage")
}
