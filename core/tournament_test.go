package core

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/ezBadminton/gocup/esports"
	"github.com/google/go-cmp/cmp"
)

var allBracketPositions = []Position{
	{Quarterfinal, 0},
	{Quarterfinal, 1},
	{Quarterfinal, 2},
	{Quarterfinal, 3},
	{Semifinal, 0},
	{Semifinal, 1},
	{Final, 0},
}

// Run through an 8-team tournament where the first team
// wins every match
func TestEndToEnd(t *testing.T) {
	state := startTournament(t, 8)
	if state.Stage != GroupStage {
		t.Fatal("the tournament did not start in the group stage")
	}
	if len(state.GroupMatches) != 28 || len(state.Standings) != 0 {
		t.Fatal("the group stage did not start with 28 matches and empty standings")
	}

	first := state.Participants[0]

	state = playGroupStage(t, state)
	if state.Stage != Playoffs {
		t.Fatal("deciding all group matches did not start the playoffs")
	}

	top := state.Standings[0]
	if top.Participant != first || top.Wins != 7 || top.Points != 21 {
		t.Fatalf("the undefeated team does not lead the standings: %+v", top)
	}

	qualifiers := state.Qualifiers()
	if len(qualifiers) != 8 || qualifiers[0] != first {
		t.Fatal("the qualifiers are not the top of the standings")
	}

	playable := state.PlayableBracketMatches()
	if !slices.Equal(playable, allBracketPositions[:4]) {
		t.Fatalf("unexpected playable matches %v", playable)
	}

	state = playBracket(t, state, allBracketPositions[:6]...)
	if state.Stage != Playoffs {
		t.Fatal("the tournament completed before the final")
	}
	if !slices.Equal(state.PlayableBracketMatches(), []Position{{Final, 0}}) {
		t.Fatal("the final is not the last playable match")
	}

	state = playBracket(t, state, Position{Final, 0})
	if state.Stage != Complete {
		t.Fatal("deciding the final did not complete the tournament")
	}
	if state.Champion == nil || *state.Champion != first {
		t.Fatal("the undefeated team is not the champion")
	}
	if len(state.PlayableBracketMatches()) != 0 {
		t.Fatal("a complete tournament has playable matches")
	}
}

func TestStartErrors(t *testing.T) {
	_, err := CreateTournament(ParticipantNames(7))
	if !errors.Is(err, ErrTooFewParticipants) {
		t.Fatal("a tournament with 7 participants was created")
	}

	_, err = CreateTournament(ParticipantNames(17))
	if !errors.Is(err, ErrTooManyParticipants) {
		t.Fatal("a tournament with 17 participants was created")
	}

	names := append(ParticipantNames(7), "  ", "")
	_, err = CreateTournament(names)
	if !errors.Is(err, ErrRoster) {
		t.Fatal("empty names counted as participants")
	}

	state := startTournament(t, 8)
	_, err = defaultEngine.Start(state, ParticipantSlice(8))
	if !errors.Is(err, ErrWrongStage) {
		t.Fatal("a started tournament was started again")
	}
}

func TestReportWrongStage(t *testing.T) {
	setup := NewTournament()
	if _, err := ReportGroupResult(setup, 0, 1, 0); !errors.Is(err, ErrWrongStage) {
		t.Fatal("a group result was accepted in setup")
	}
	if _, err := ReportBracketResult(setup, Quarterfinal, 0, 2, 0); !errors.Is(err, ErrWrongStage) {
		t.Fatal("a bracket result was accepted in setup")
	}

	groups := startTournament(t, 8)
	if _, err := ReportBracketResult(groups, Quarterfinal, 0, 2, 0); !errors.Is(err, ErrWrongStage) {
		t.Fatal("a bracket result was accepted in the group stage")
	}

	playoffs := playGroupStage(t, groups)
	if _, err := ReportGroupResult(playoffs, 0, 0, 1); !errors.Is(err, ErrWrongStage) {
		t.Fatal("a changed group result was accepted in the playoffs")
	}

	next, err := ReportGroupResult(playoffs, 0, 1, 0)
	if err != nil {
		t.Fatal("re-delivering a group result in the playoffs did error")
	}
	if diff := cmp.Diff(playoffs, next); diff != "" {
		t.Fatalf("re-delivering a group result changed the state:\n%s", diff)
	}
}

func TestReportGroupErrors(t *testing.T) {
	state := startTournament(t, 8)

	if _, err := ReportGroupResult(state, 28, 1, 0); !errors.Is(err, ErrUnknownMatch) || !errors.Is(err, ErrInvalidResult) {
		t.Fatal("an unknown group match was accepted")
	}
	if _, err := ReportGroupResult(state, -1, 1, 0); !errors.Is(err, ErrUnknownMatch) {
		t.Fatal("a negative match index was accepted")
	}

	for _, score := range [][2]int{{2, 1}, {1, 1}, {0, 0}, {2, 0}, {-1, 0}} {
		_, err := ReportGroupResult(state, 0, score[0], score[1])
		if !errors.Is(err, ErrInvalidResult) {
			t.Fatalf("the group result %v was accepted", score)
		}
	}
}

func TestReportGroupOverwrite(t *testing.T) {
	state := startTournament(t, 8)
	a := state.GroupMatches[0].SlotA
	b := state.GroupMatches[0].SlotB

	state, err := ReportGroupResult(state, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	state, err = ReportGroupResult(state, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	points := make(map[string]int)
	for _, r := range state.Standings {
		points[r.Participant.ID] = r.Points
	}
	if points[a.ID] != 0 || points[b.ID] != 3 {
		t.Fatal("re-reporting a group match did not replace its result")
	}
	if state.Stage != GroupStage {
		t.Fatal("the stage changed with pending group matches")
	}
}

func TestStatesAreNotModified(t *testing.T) {
	state := startTournament(t, 8)
	before := state.Clone()

	next, err := ReportGroupResult(state, 3, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, state); diff != "" {
		t.Fatalf("an accepted result changed the input state:\n%s", diff)
	}

	if _, err := ReportGroupResult(next, 4, 3, 3); err == nil {
		t.Fatal("an invalid result was accepted")
	}

	playoffs := playGroupStage(t, next)
	saved := playoffs.Clone()
	bracketBefore := *playoffs.Bracket

	advanced := playBracket(t, playoffs, Position{Quarterfinal, 0})
	if diff := cmp.Diff(saved, playoffs); diff != "" {
		t.Fatalf("a bracket result changed the input state:\n%s", diff)
	}
	if *playoffs.Bracket != bracketBefore {
		t.Fatal("a bracket result changed the input bracket")
	}
	if advanced.Bracket.Semifinals[0].SlotA == nil {
		t.Fatal("the quarterfinal winner did not advance")
	}
}

func TestReportBracketResult(t *testing.T) {
	state := playGroupStage(t, startTournament(t, 8))

	_, err := ReportBracketResult(state, Semifinal, 0, 2, 0)
	if !errors.Is(err, ErrSlotsUnresolved) || !errors.Is(err, ErrInvalidResult) {
		t.Fatal("a result for a semifinal without opponents was accepted")
	}

	_, err = ReportBracketResult(state, Final, 1, 3, 0)
	if !errors.Is(err, ErrUnknownMatch) {
		t.Fatal("a result for an unknown bracket match was accepted")
	}

	for _, score := range [][2]int{{1, 0}, {3, 0}, {2, 2}, {3, 2}} {
		_, err = ReportBracketResult(state, Quarterfinal, 0, score[0], score[1])
		if !errors.Is(err, ErrInvalidResult) {
			t.Fatalf("the best of 3 result %v was accepted", score)
		}
	}

	state, err = ReportBracketResult(state, Quarterfinal, 1, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	same, err := ReportBracketResult(state, Quarterfinal, 1, 2, 1)
	if err != nil {
		t.Fatal("re-delivering a bracket result did error")
	}
	if diff := cmp.Diff(state, same); diff != "" {
		t.Fatalf("re-delivering a bracket result changed the state:\n%s", diff)
	}

	corrected, err := ReportBracketResult(state, Quarterfinal, 1, 2, 0)
	if err != nil {
		t.Fatal("correcting the score with the same winner did error")
	}
	if corrected.Bracket.Quarterfinals[1].ScoreB != 0 {
		t.Fatal("the score correction was not applied")
	}

	_, err = ReportBracketResult(state, Quarterfinal, 1, 1, 2)
	if !errors.Is(err, ErrBracketCorruption) {
		t.Fatal("a result with a different winner was accepted")
	}
}

func TestFinalRedelivery(t *testing.T) {
	state := playGroupStage(t, startTournament(t, 8))
	state = playBracket(t, state, allBracketPositions...)

	final := state.Bracket.Final
	same, err := ReportBracketResult(state, Final, 0, final.ScoreA, final.ScoreB)
	if err != nil {
		t.Fatal("re-delivering the final result did error")
	}
	if diff := cmp.Diff(state, same); diff != "" {
		t.Fatal("re-delivering the final result changed the state")
	}

	_, err = ReportBracketResult(state, Final, 0, 0, 3)
	if !errors.Is(err, ErrBracketCorruption) {
		t.Fatal("the final's winner was changed")
	}

	_, err = ReportBracketResult(state, Final, 0, 3, 1)
	if !errors.Is(err, ErrWrongStage) {
		t.Fatal("a complete tournament accepted a score change")
	}
}

func TestEngineSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.PointsPerWin = 2
	settings.QuarterfinalFormat = esports.BestOf5
	settings.Seeding = SeedCrossBracket

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	engine, err := NewEngine(settings, logger)
	if err != nil {
		t.Fatal(err)
	}

	state, err := engine.CreateTournament(ParticipantNames(8))
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range state.PendingGroupMatches() {
		state, err = engine.ReportGroupResult(state, i, 1, 0)
		if err != nil {
			t.Fatal(err)
		}
	}

	if state.Standings[0].Points != 14 {
		t.Fatal("the points per win setting was ignored")
	}
	qf := state.Bracket.Quarterfinals[0]
	if qf.Format != esports.BestOf5 || *qf.SlotB != state.Participants[7] {
		t.Fatal("the bracket settings were ignored")
	}

	for _, msg := range []string{"Group stage started", "Group result accepted", "Playoffs started"} {
		if !strings.Contains(logs.String(), msg) {
			t.Fatalf("the engine did not log %q", msg)
		}
	}

	settings.MaxParticipants = 20
	if _, err := NewEngine(settings, nil); !errors.Is(err, ErrInvalidSettings) {
		t.Fatal("settings beyond the hard bounds were accepted")
	}
}

func TestStageText(t *testing.T) {
	for s := Setup; s <= Complete; s += 1 {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var parsed Stage
		if err := parsed.UnmarshalText(text); err != nil || parsed != s {
			t.Fatalf("stage %v did not survive its text form", s)
		}
	}

	if string(must(GroupStage.MarshalText())) != "groups" {
		t.Fatal("the group stage is not named groups")
	}

	var s Stage
	if err := s.UnmarshalText([]byte("finals")); err == nil {
		t.Fatal("an unknown stage name was parsed")
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
