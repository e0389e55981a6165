package core

import (
	"fmt"
	"strings"

	"github.com/ezBadminton/gocup/esports"
)

// A MatchRecord is a match with two slots for the opponents
// and the reported result.
//
// A nil slot is not yet determined (TBD). The winner is only
// set once a valid result for the match format is reported.
type MatchRecord struct {
	SlotA  *Participant   `json:"slotA"`
	SlotB  *Participant   `json:"slotB"`
	ScoreA int            `json:"scoreA"`
	ScoreB int            `json:"scoreB"`
	Winner *Participant   `json:"winner"`
	Format esports.BestOf `json:"format"`
}

func NewMatch(slotA, slotB *Participant, format esports.BestOf) MatchRecord {
	return MatchRecord{SlotA: slotA, SlotB: slotB, Format: format}
}

func (m MatchRecord) HasWinner() bool {
	return m.Winner != nil
}

// Returns true when both opponents are determined
func (m MatchRecord) Resolved() bool {
	return m.SlotA != nil && m.SlotB != nil
}

func (m MatchRecord) Loser() *Participant {
	switch {
	case m.Winner == nil:
		return nil
	case sameParticipant(m.Winner, m.SlotA):
		return m.SlotB
	default:
		return m.SlotA
	}
}

func (m *MatchRecord) slot(side Side) **Participant {
	if side == SideA {
		return &m.SlotA
	}
	return &m.SlotB
}

// Returns a copy of the match with the validated result applied
func (m MatchRecord) withResult(scoreA, scoreB int) (MatchRecord, error) {
	if !m.Resolved() {
		return m, ErrSlotsUnresolved
	}

	score, err := esports.NewScore(scoreA, scoreB, m.Format)
	if err != nil {
		return m, err
	}
	winner, err := score.GetWinner()
	if err != nil {
		return m, err
	}

	m.ScoreA = score.A
	m.ScoreB = score.B
	if winner == 0 {
		m.Winner = m.SlotA
	} else {
		m.Winner = m.SlotB
	}
	return m, nil
}

// Returns true when the same result with the same winner is
// already recorded
func (m MatchRecord) sameResult(other MatchRecord) bool {
	return m.ScoreA == other.ScoreA &&
		m.ScoreB == other.ScoreB &&
		sameParticipant(m.Winner, other.Winner)
}

func (m MatchRecord) String() string {
	var sb strings.Builder
	writeSlot := func(p *Participant) {
		if p == nil {
			sb.WriteString("[TBD]")
		} else {
			sb.WriteString(p.Name)
		}
	}

	writeSlot(m.SlotA)
	sb.WriteString(" vs. ")
	writeSlot(m.SlotB)
	sb.WriteString(" (")
	sb.WriteString(m.Format.String())
	sb.WriteRune(')')

	if m.Winner != nil {
		fmt.Fprintf(&sb, "\t%d - %d", m.ScoreA, m.ScoreB)
	}

	return sb.String()
}
