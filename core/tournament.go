package core

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Stage is the position of a tournament in its lifecycle.
// Stages only ever move forward.
type Stage int

const (
	Setup Stage = iota
	GroupStage
	Playoffs
	Complete
)

var stageNames = [...]string{"setup", "groups", "playoffs", "complete"}

func (s Stage) Valid() bool {
	return s >= Setup && s <= Complete
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	i := slices.Index(stageNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown stage %q", text)
	}
	*s = Stage(i)
	return nil
}

// TournamentState is the complete state of one tournament.
//
// The engine never modifies a state it was given. Every accepted
// operation returns a new state and the old one stays valid.
//
// Settings are fixed when the tournament starts. Results are scored
// and the bracket is built under them, not under the settings of
// the engine that reports the result.
type TournamentState struct {
	Settings     Settings      `json:"settings"`
	Participants []Participant `json:"participants"`
	GroupMatches []MatchRecord `json:"groupMatches"`
	Standings    []StandingRow `json:"standings"`
	Bracket      *Bracket      `json:"bracket"`
	Stage        Stage         `json:"stage"`
	Champion     *Participant  `json:"champion"`
}

// Returns an empty tournament in the setup stage
func NewTournament() TournamentState {
	return TournamentState{
		Participants: []Participant{},
		GroupMatches: []MatchRecord{},
		Standings:    []StandingRow{},
		Stage:        Setup,
	}
}

// Clone returns a deep copy that shares no slices or bracket with s.
// The participants themselves are immutable and stay shared.
func (s TournamentState) Clone() TournamentState {
	c := s
	c.Participants = slices.Clone(s.Participants)
	c.GroupMatches = slices.Clone(s.GroupMatches)
	c.Standings = slices.Clone(s.Standings)
	if s.Bracket != nil {
		b := *s.Bracket
		c.Bracket = &b
	}
	return c
}

// Returns the schedule indices of the group matches without a result
func (s TournamentState) PendingGroupMatches() []int {
	pending := make([]int, 0, len(s.GroupMatches))
	for i, m := range s.GroupMatches {
		if !m.HasWinner() {
			pending = append(pending, i)
		}
	}
	return pending
}

// Returns the bracket matches that have both opponents but no
// winner yet in play order
func (s TournamentState) PlayableBracketMatches() []Position {
	if s.Bracket == nil {
		return []Position{}
	}
	playable := make([]Position, 0, Quarterfinal.Size())
	for _, p := range bracketPositions {
		m, _ := s.Bracket.Match(p)
		if m.Resolved() && !m.HasWinner() {
			playable = append(playable, p)
		}
	}
	return playable
}

// Returns the participants promoted into the bracket in rank order.
// Before the playoffs this is the current top of the standings.
func (s TournamentState) Qualifiers() []Participant {
	return topParticipants(s.Standings, Qualifiers)
}

func (s TournamentState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v, %d participants", s.Stage, len(s.Participants))
	if s.Champion != nil {
		fmt.Fprintf(&sb, ", champion %v", s.Champion)
	}
	return sb.String()
}

// The Engine starts tournaments under its settings and applies
// results to tournament states.
type Engine struct {
	settings Settings
	logger   *slog.Logger
}

// NewEngine validates the settings and returns an engine that logs
// to the given logger. A nil logger discards all records.
func NewEngine(settings Settings, logger *slog.Logger) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{settings: settings, logger: logger}, nil
}

func (e *Engine) Settings() Settings {
	return e.settings
}

func (e *Engine) NewRoster() *Roster {
	return NewRoster(e.settings)
}

// NewParticipants registers the names on a fresh roster and
// validates the result. Empty names are skipped.
func (e *Engine) NewParticipants(names []string) ([]Participant, error) {
	roster := e.NewRoster()
	for _, name := range names {
		if _, err := roster.Add(name); err != nil {
			return nil, err
		}
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return roster.Participants(), nil
}

// CreateTournament registers the names and starts the group stage
func (e *Engine) CreateTournament(names []string) (TournamentState, error) {
	participants, err := e.NewParticipants(names)
	if err != nil {
		return TournamentState{}, err
	}
	return e.Start(NewTournament(), participants)
}

// Start moves a tournament from setup into the group stage with
// the full round robin schedule of the participants.
func (e *Engine) Start(state TournamentState, participants []Participant) (TournamentState, error) {
	if state.Stage != Setup {
		return state, fmt.Errorf("%w: cannot start in stage %v", ErrWrongStage, state.Stage)
	}
	if err := ValidateRoster(participants, e.settings); err != nil {
		return state, err
	}

	next := NewTournament()
	next.Settings = e.settings
	next.Participants = slices.Clone(participants)
	next.GroupMatches = GenerateSchedule(next.Participants)
	next.Stage = GroupStage

	e.logger.Info(
		"Group stage started",
		"participants", len(next.Participants),
		"matches", len(next.GroupMatches),
	)

	return next, nil
}

// ReportGroupResult records the result of the group match at the
// schedule index and recomputes the standings. Reporting a match
// again replaces its earlier result.
//
// When the last group match is decided the bracket is seeded and
// the tournament enters the playoffs.
func (e *Engine) ReportGroupResult(state TournamentState, index, scoreA, scoreB int) (TournamentState, error) {
	inRange := index >= 0 && index < len(state.GroupMatches)

	if state.Stage != GroupStage {
		// A late duplicate of an accepted result changes nothing
		if state.Stage > GroupStage && inRange {
			m := state.GroupMatches[index]
			if decided, err := m.withResult(scoreA, scoreB); err == nil && m.sameResult(decided) {
				return state, nil
			}
		}
		return state, fmt.Errorf("%w: cannot report group results in stage %v", ErrWrongStage, state.Stage)
	}

	if !inRange {
		return state, fmt.Errorf("%w: group match %d", ErrUnknownMatch, index)
	}

	match, err := state.GroupMatches[index].withResult(scoreA, scoreB)
	if err != nil {
		return state, fmt.Errorf("group match %d: %w", index, err)
	}

	next := state.Clone()
	next.GroupMatches[index] = match
	next.Standings = ComputeStandings(next.Participants, next.GroupMatches, next.Settings.PointsPerWin)

	e.logger.Debug(
		"Group result accepted",
		"match", index,
		"result", match.String(),
	)

	if len(next.PendingGroupMatches()) > 0 {
		return next, nil
	}

	bracket, err := BuildBracket(next.Standings, next.Settings)
	if err != nil {
		return state, err
	}
	next.Bracket = &bracket
	next.Stage = Playoffs

	e.logger.Info(
		"Playoffs started",
		"qualifiers", len(next.Qualifiers()),
		"seeding", next.Settings.Seeding.String(),
	)

	return next, nil
}

// ReportBracketResult records the result of the bracket match at the
// round and index and advances its winner.
//
// A decided match only accepts a result with the same winner.
// Deciding the final completes the tournament.
func (e *Engine) ReportBracketResult(
	state TournamentState,
	round BracketRound,
	index, scoreA, scoreB int,
) (TournamentState, error) {
	if state.Stage != Playoffs && state.Stage != Complete {
		return state, fmt.Errorf("%w: cannot report bracket results in stage %v", ErrWrongStage, state.Stage)
	}
	pos := Position{Round: round, Index: index}
	if !pos.Valid() {
		return state, fmt.Errorf("%w: %v index %d", ErrUnknownMatch, round, index)
	}
	if state.Bracket == nil {
		return state, fmt.Errorf("%w: no bracket in stage %v", ErrBracketCorruption, state.Stage)
	}

	current, _ := state.Bracket.Match(pos)
	match, err := current.withResult(scoreA, scoreB)
	if err != nil {
		return state, fmt.Errorf("%v: %w", pos, err)
	}

	if current.HasWinner() {
		if !sameParticipant(current.Winner, match.Winner) {
			return state, fmt.Errorf(
				"%w: %v was won by %v, the new result names %v",
				ErrBracketCorruption,
				pos,
				current.Winner,
				match.Winner,
			)
		}
		if current.sameResult(match) {
			return state, nil
		}
	}

	if state.Stage == Complete {
		return state, fmt.Errorf("%w: the tournament is complete", ErrWrongStage)
	}

	next := state.Clone()
	target, _ := next.Bracket.Match(pos)
	*target = match

	bracket, champion, err := Advance(*next.Bracket, pos)
	if err != nil {
		return state, err
	}
	next.Bracket = &bracket

	e.logger.Debug(
		"Bracket result accepted",
		"match", pos.String(),
		"result", match.String(),
	)

	if champion != nil {
		next.Champion = champion
		next.Stage = Complete
		e.logger.Info("Tournament complete", "champion", champion.Name)
	}

	return next, nil
}

var defaultEngine = mustEngine(DefaultSettings())

func mustEngine(settings Settings) *Engine {
	e, err := NewEngine(settings, nil)
	if err != nil {
		panic(err)
	}
	return e
}

func NewParticipants(names []string) ([]Participant, error) {
	return defaultEngine.NewParticipants(names)
}

// CreateTournament registers the names and starts the group stage
// with the default settings.
func CreateTournament(names []string) (TournamentState, error) {
	return defaultEngine.CreateTournament(names)
}

func ReportGroupResult(state TournamentState, index, scoreA, scoreB int) (TournamentState, error) {
	return defaultEngine.ReportGroupResult(state, index, scoreA, scoreB)
}

func ReportBracketResult(
	state TournamentState,
	round BracketRound,
	index, scoreA, scoreB int,
) (TournamentState, error) {
	return defaultEngine.ReportBracketResult(state, round, index, scoreA, scoreB)
}
