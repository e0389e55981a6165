// Package manager holds the single live tournament and keeps it
// persisted across restarts.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ezBadminton/gocup/config"
	"github.com/ezBadminton/gocup/core"
	"github.com/ezBadminton/gocup/storage"
)

// A Manager owns the current tournament state. Every accepted
// operation is saved before it becomes the current state.
// A failed save keeps the previous state.
type Manager struct {
	mu     sync.Mutex
	engine *core.Engine
	store  storage.Store
	logger *slog.Logger
	state  core.TournamentState
}

// New returns a manager holding a fresh setup state. Call Open
// to restore a stored tournament. A nil logger discards all records.
func New(engine *core.Engine, store storage.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		engine: engine,
		store:  store,
		logger: logger,
		state:  core.NewTournament(),
	}
}

// FromConfig builds a manager that saves to the configured storage
// path and logs to w with the configured level and format.
func FromConfig(cfg *config.Config, w io.Writer) (*Manager, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Log, w)

	engine, err := core.NewEngine(settings, logger)
	if err != nil {
		return nil, err
	}

	return New(engine, storage.NewFileStore(cfg.Storage.Path), logger), nil
}

// Open restores the stored tournament or starts over in setup
// when nothing is stored. A corrupt snapshot is an error.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		m.state = core.NewTournament()
		m.logger.Info("No stored tournament, starting in setup")
		return nil
	}
	if err != nil {
		return err
	}

	state, err := m.engine.Deserialize(data)
	if err != nil {
		m.logger.Error("Stored tournament is unreadable", "error", err)
		return err
	}

	m.state = state
	m.logger.Info(
		"Restored tournament",
		"stage", state.Stage.String(),
		"participants", len(state.Participants),
	)
	return nil
}

// State returns a copy of the current tournament. Changing it
// does not affect the manager.
func (m *Manager) State() core.TournamentState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Start registers the names and starts the group stage
func (m *Manager) Start(ctx context.Context, names []string) (core.TournamentState, error) {
	return m.apply(ctx, func(state core.TournamentState) (core.TournamentState, error) {
		participants, err := m.engine.NewParticipants(names)
		if err != nil {
			return state, err
		}
		return m.engine.Start(state, participants)
	})
}

func (m *Manager) ReportGroupResult(ctx context.Context, index, scoreA, scoreB int) (core.TournamentState, error) {
	return m.apply(ctx, func(state core.TournamentState) (core.TournamentState, error) {
		return m.engine.ReportGroupResult(state, index, scoreA, scoreB)
	})
}

func (m *Manager) ReportBracketResult(
	ctx context.Context,
	round core.BracketRound,
	index, scoreA, scoreB int,
) (core.TournamentState, error) {
	return m.apply(ctx, func(state core.TournamentState) (core.TournamentState, error) {
		return m.engine.ReportBracketResult(state, round, index, scoreA, scoreB)
	})
}

// Reset discards the tournament and its snapshot
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.state = core.NewTournament()
	m.logger.Info("Tournament reset")
	return nil
}

func (m *Manager) apply(
	ctx context.Context,
	op func(core.TournamentState) (core.TournamentState, error),
) (core.TournamentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := op(m.state)
	if err != nil {
		return m.state.Clone(), err
	}

	data, err := m.engine.Serialize(next)
	if err != nil {
		return m.state.Clone(), fmt.Errorf("manager: encode snapshot: %w", err)
	}
	if err := m.store.Save(ctx, data); err != nil {
		m.logger.Error("Saving the tournament failed", "error", err)
		return m.state.Clone(), fmt.Errorf("manager: save snapshot: %w", err)
	}

	m.state = next
	return next.Clone(), nil
}
