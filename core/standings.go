package core

import (
	"cmp"
	"slices"
)

// A StandingRow holds one participant's group stage metrics.
// Rows are derived from the match list and never edited.
type StandingRow struct {
	Participant Participant `json:"participant"`
	Wins        int         `json:"wins"`
	Losses      int         `json:"losses"`
	RoundsWon   int         `json:"roundsWon"`
	RoundsLost  int         `json:"roundsLost"`
	Points      int         `json:"points"`
}

func (r StandingRow) RoundDifferential() int {
	return r.RoundsWon - r.RoundsLost
}

// ComputeStandings derives the ranked standings from scratch.
//
// Every participant gets a row, also without any decided matches.
// The rows are ranked by points and then by round differential.
// Remaining ties keep the order of the participants slice.
//
// Calling it again with unchanged input yields identical rows.
func ComputeStandings(participants []Participant, matches []MatchRecord, pointsPerWin int) []StandingRow {
	rows := make([]StandingRow, len(participants))
	rowIndex := make(map[string]int, len(participants))
	for i, p := range participants {
		rows[i] = StandingRow{Participant: p}
		rowIndex[p.ID] = i
	}

	for _, m := range matches {
		extractMatchMetrics(m, rows, rowIndex, pointsPerWin)
	}

	sortStandings(rows)

	return rows
}

func extractMatchMetrics(
	match MatchRecord,
	rows []StandingRow,
	rowIndex map[string]int,
	pointsPerWin int,
) {
	if match.Winner == nil || !match.Resolved() {
		return
	}

	i1, ok1 := rowIndex[match.SlotA.ID]
	i2, ok2 := rowIndex[match.SlotB.ID]
	if !ok1 || !ok2 {
		return
	}

	r1 := &rows[i1]
	r2 := &rows[i2]

	r1.RoundsWon += match.ScoreA
	r1.RoundsLost += match.ScoreB
	r2.RoundsWon += match.ScoreB
	r2.RoundsLost += match.ScoreA

	winner, loser := r1, r2
	if match.Loser().ID == match.SlotA.ID {
		winner, loser = r2, r1
	}

	winner.Wins += 1
	winner.Points += pointsPerWin
	loser.Losses += 1
}

// Sorts descending by points, then by round differential.
// The sort is stable so residual ties stay in input order.
func sortStandings(rows []StandingRow) {
	slices.SortStableFunc(rows, func(a, b StandingRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(b.RoundDifferential(), a.RoundDifferential())
	})
}

// Returns the participants of the top n rows
func topParticipants(standings []StandingRow, n int) []Participant {
	n = min(n, len(standings))
	participants := make([]Participant, 0, n)
	for _, r := range standings[:n] {
		participants = append(participants, r.Participant)
	}
	return participants
}
