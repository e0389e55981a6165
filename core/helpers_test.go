package core

import (
	"fmt"
	"testing"
)

func ParticipantSlice(n int) []Participant {
	participants := make([]Participant, 0, n)
	for i := range n {
		participants = append(participants, NewParticipant(fmt.Sprintf("Team %d", i+1)))
	}
	return participants
}

func ParticipantNames(n int) []string {
	names := make([]string, 0, n)
	for i := range n {
		names = append(names, fmt.Sprintf("Team %d", i+1))
	}
	return names
}

// Starts a tournament of n participants with the default engine
func startTournament(t *testing.T, n int) TournamentState {
	t.Helper()
	state, err := CreateTournament(ParticipantNames(n))
	if err != nil {
		t.Fatal(err)
	}
	return state
}

// Reports a 1-0 for slot A in every group match. The participant
// registered first wins all its matches.
func playGroupStage(t *testing.T, state TournamentState) TournamentState {
	t.Helper()
	for _, i := range state.PendingGroupMatches() {
		var err error
		state, err = ReportGroupResult(state, i, 1, 0)
		if err != nil {
			t.Fatal(err)
		}
	}
	return state
}

// Plays the given bracket matches with slot A winning
func playBracket(t *testing.T, state TournamentState, positions ...Position) TournamentState {
	t.Helper()
	for _, p := range positions {
		m, err := state.Bracket.Match(p)
		if err != nil {
			t.Fatal(err)
		}
		threshold := m.Format.Threshold()
		state, err = ReportBracketResult(state, p.Round, p.Index, threshold, 0)
		if err != nil {
			t.Fatal(err)
		}
	}
	return state
}
