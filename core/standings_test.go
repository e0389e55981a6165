package core

import (
	"slices"
	"testing"

	"github.com/ezBadminton/gocup/esports"
	"github.com/google/go-cmp/cmp"
)

func decidedMatch(a, b *Participant, scoreA, scoreB int) MatchRecord {
	m := NewMatch(a, b, esports.BestOf5)
	m.ScoreA = scoreA
	m.ScoreB = scoreB
	if scoreA > scoreB {
		m.Winner = a
	} else {
		m.Winner = b
	}
	return m
}

func TestStandingsOrder(t *testing.T) {
	participants := ParticipantSlice(5)
	a, b, c, d, e := &participants[0], &participants[1], &participants[2], &participants[3], &participants[4]

	matches := []MatchRecord{
		decidedMatch(a, d, 3, 2),
		decidedMatch(a, e, 3, 2),
		decidedMatch(b, d, 3, 0),
		decidedMatch(b, e, 3, 1),
		decidedMatch(c, e, 3, 0),
		decidedMatch(c, d, 0, 3),
	}

	standings := ComputeStandings(participants, matches, 3)

	points := make([]int, 0, 3)
	differentials := make([]int, 0, 3)
	for _, r := range standings[:3] {
		points = append(points, r.Points)
		differentials = append(differentials, r.RoundDifferential())
	}

	if !slices.Equal(points, []int{6, 6, 3}) {
		t.Fatalf("unexpected points %v", points)
	}
	if !slices.Equal(differentials, []int{5, 2, 0}) {
		t.Fatalf("the tie on points was not broken by round differential %v", differentials)
	}

	rowB := standings[0]
	if rowB.Participant != *b || rowB.Wins != 2 || rowB.Losses != 0 || rowB.RoundsWon != 6 || rowB.RoundsLost != 1 {
		t.Fatalf("unexpected row %+v", rowB)
	}

	if standings[3].Participant != *d || standings[4].Participant != *e {
		t.Fatal("the bottom of the standings is wrong")
	}
}

func TestStandingsStableTies(t *testing.T) {
	participants := ParticipantSlice(4)
	p := func(i int) *Participant { return &participants[i] }

	matches := []MatchRecord{
		decidedMatch(p(3), p(2), 1, 0),
		decidedMatch(p(1), p(0), 1, 0),
	}

	standings := ComputeStandings(participants, matches, 3)

	order := make([]string, 0, 4)
	for _, r := range standings {
		order = append(order, r.Participant.ID)
	}
	expected := []string{participants[1].ID, participants[3].ID, participants[0].ID, participants[2].ID}
	if !slices.Equal(order, expected) {
		t.Fatal("tied rows did not keep the roster order")
	}
}

func TestStandingsWithoutResults(t *testing.T) {
	participants := ParticipantSlice(8)
	standings := ComputeStandings(participants, GenerateSchedule(participants), 3)

	if len(standings) != len(participants) {
		t.Fatal("not every participant got a row")
	}
	for i, r := range standings {
		if r != (StandingRow{Participant: participants[i]}) {
			t.Fatal("a row without results is not zeroed or not in roster order")
		}
	}
}

func TestStandingsIdempotent(t *testing.T) {
	state := startTournament(t, 10)
	for i := range 20 {
		state, _ = ReportGroupResult(state, i, i%2, (i+1)%2)
	}
	matches := slices.Clone(state.GroupMatches)

	first := ComputeStandings(state.Participants, state.GroupMatches, 3)
	second := ComputeStandings(state.Participants, state.GroupMatches, 3)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("recomputing the standings changed them (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, state.Standings); diff != "" {
		t.Fatalf("the reported standings differ from a recomputation:\n%s", diff)
	}
	if diff := cmp.Diff(matches, state.GroupMatches); diff != "" {
		t.Fatal("computing the standings changed the matches")
	}
}

func TestStandingsIgnoreUnknownParticipants(t *testing.T) {
	participants := ParticipantSlice(2)
	stranger := NewParticipant("Stranger")

	matches := []MatchRecord{decidedMatch(&participants[0], &stranger, 3, 0)}
	standings := ComputeStandings(participants, matches, 3)

	for _, r := range standings {
		if r.Points != 0 {
			t.Fatal("a match against an unknown participant was counted")
		}
	}
}
