package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

const snapshotVersion = 1

type snapshot struct {
	Version int `json:"version"`
	TournamentState
}

// Serialize encodes the state as a versioned JSON snapshot
func (e *Engine) Serialize(state TournamentState) ([]byte, error) {
	return json.Marshal(snapshot{Version: snapshotVersion, TournamentState: state})
}

// Deserialize decodes a snapshot and checks that it describes a
// state the engine could have produced under the settings stored
// with it. Every failure wraps ErrCorruptSnapshot.
func (e *Engine) Deserialize(data []byte) (TournamentState, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var s snapshot
	if err := decoder.Decode(&s); err != nil {
		return TournamentState{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if s.Version != snapshotVersion {
		return TournamentState{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, s.Version)
	}

	state := s.TournamentState
	normalize(&state)

	if err := validateState(state); err != nil {
		return TournamentState{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return state, nil
}

func Serialize(state TournamentState) ([]byte, error) {
	return defaultEngine.Serialize(state)
}

func Deserialize(data []byte) (TournamentState, error) {
	return defaultEngine.Deserialize(data)
}

func normalize(state *TournamentState) {
	if state.Participants == nil {
		state.Participants = []Participant{}
	}
	if state.GroupMatches == nil {
		state.GroupMatches = []MatchRecord{}
	}
	if state.Standings == nil {
		state.Standings = []StandingRow{}
	}
}

var (
	errSetupNotEmpty     = errors.New("setup state holds tournament data")
	errScheduleMismatch  = errors.New("group matches differ from the schedule")
	errStandingsMismatch = errors.New("standings differ from the group results")
	errStageMismatch     = errors.New("state does not match its stage")
	errSlotMismatch      = errors.New("bracket slot does not match the feeding match")
)

func validateState(state TournamentState) error {
	if !state.Stage.Valid() {
		return fmt.Errorf("unknown stage %d", int(state.Stage))
	}

	if state.Stage == Setup {
		if len(state.Participants) > 0 ||
			len(state.GroupMatches) > 0 ||
			len(state.Standings) > 0 ||
			state.Bracket != nil ||
			state.Champion != nil {
			return errSetupNotEmpty
		}
		return nil
	}

	settings := state.Settings
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ValidateRoster(state.Participants, settings); err != nil {
		return err
	}
	if err := validateGroupMatches(state); err != nil {
		return err
	}
	if err := validateStandings(state); err != nil {
		return err
	}

	pending := len(state.PendingGroupMatches())
	if state.Stage == GroupStage {
		if pending == 0 || state.Bracket != nil || state.Champion != nil {
			return fmt.Errorf("%w: %v", errStageMismatch, state.Stage)
		}
		return nil
	}

	if pending > 0 || state.Bracket == nil {
		return fmt.Errorf("%w: %v", errStageMismatch, state.Stage)
	}
	if err := validateBracket(state); err != nil {
		return err
	}

	champion := state.Bracket.Champion()
	switch {
	case state.Stage == Playoffs && (champion != nil || state.Champion != nil):
		return fmt.Errorf("%w: %v with a champion", errStageMismatch, state.Stage)
	case state.Stage == Complete && (champion == nil || !sameParticipant(champion, state.Champion)):
		return fmt.Errorf("%w: %v without the final's winner as champion", errStageMismatch, state.Stage)
	}

	return nil
}

func validateGroupMatches(state TournamentState) error {
	schedule := GenerateSchedule(state.Participants)
	if len(schedule) != len(state.GroupMatches) {
		return fmt.Errorf("%w: %d matches instead of %d", errScheduleMismatch, len(state.GroupMatches), len(schedule))
	}

	for i, m := range state.GroupMatches {
		want := schedule[i]
		if !sameParticipant(m.SlotA, want.SlotA) ||
			!sameParticipant(m.SlotB, want.SlotB) ||
			m.Format != want.Format {
			return fmt.Errorf("%w: match %d is %v", errScheduleMismatch, i, m)
		}
		if err := validateResult(m); err != nil {
			return fmt.Errorf("group match %d: %w", i, err)
		}
	}

	return nil
}

// Checks that a recorded result is what reporting its scores yields
func validateResult(m MatchRecord) error {
	if !m.HasWinner() {
		if m.ScoreA != 0 || m.ScoreB != 0 {
			return fmt.Errorf("%w: scores without a winner", ErrInvalidResult)
		}
		return nil
	}

	decided, err := NewMatch(m.SlotA, m.SlotB, m.Format).withResult(m.ScoreA, m.ScoreB)
	if err != nil {
		return err
	}
	if !decided.sameResult(m) {
		return fmt.Errorf("%w: winner %v does not match the scores", ErrInvalidResult, m.Winner)
	}
	return nil
}

func validateStandings(state TournamentState) error {
	anyDecided := slices.ContainsFunc(state.GroupMatches, MatchRecord.HasWinner)
	if !anyDecided && len(state.Standings) == 0 {
		return nil
	}

	want := ComputeStandings(state.Participants, state.GroupMatches, state.Settings.PointsPerWin)
	if !slices.Equal(want, state.Standings) {
		return errStandingsMismatch
	}
	return nil
}

func validateBracket(state TournamentState) error {
	bracket := state.Bracket

	if err := bracket.checkFormats(state.Settings); err != nil {
		return err
	}

	seeded, err := BuildBracket(state.Standings, state.Settings)
	if err != nil {
		return err
	}
	for _, p := range seededPositions {
		m, _ := bracket.Match(p)
		want, _ := seeded.Match(p)
		if !sameParticipant(m.SlotA, want.SlotA) || !sameParticipant(m.SlotB, want.SlotB) {
			return fmt.Errorf("%w: %v is %v", errSlotMismatch, p, m)
		}
	}

	for _, p := range bracketPositions {
		m, _ := bracket.Match(p)
		if err := validateResult(*m); err != nil {
			return fmt.Errorf("%v: %w", p, err)
		}

		if !m.HasWinner() {
			for _, downstream := range pathToFinal(p) {
				d, _ := bracket.Match(downstream)
				if d.HasWinner() {
					return fmt.Errorf("%w: %v is decided before %v", errSlotMismatch, downstream, p)
				}
			}
		}

		for i, feeder := range feederPositions(p) {
			f, _ := bracket.Match(feeder)
			slot := *m.slot(Side(i))
			if !sameParticipant(slot, f.Winner) {
				return fmt.Errorf("%w: slot %v of %v", errSlotMismatch, Side(i), p)
			}
		}
	}

	return nil
}
