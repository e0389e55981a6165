package core

import "fmt"

type BracketRound int

const (
	Quarterfinal BracketRound = iota
	Semifinal
	Final
)

var bracketRoundNames = [...]string{"quarterfinal", "semifinal", "final"}

func (r BracketRound) String() string {
	if r < Quarterfinal || r > Final {
		return fmt.Sprintf("BracketRound(%d)", int(r))
	}
	return bracketRoundNames[r]
}

// Returns the number of matches in the round
func (r BracketRound) Size() int {
	switch r {
	case Quarterfinal:
		return 4
	case Semifinal:
		return 2
	case Final:
		return 1
	}
	return 0
}

// Side is one of the two slots of a match
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Position addresses a match in the bracket
type Position struct {
	Round BracketRound
	Index int
}

func (p Position) Valid() bool {
	return p.Index >= 0 && p.Index < p.Round.Size()
}

// Graph node hash
func (p Position) Id() int {
	return int(p.Round)*4 + p.Index
}

func (p Position) String() string {
	if p.Round == Final {
		return p.Round.String()
	}
	return fmt.Sprintf("%v %d", p.Round, p.Index+1)
}

type feed struct {
	target Position
	side   Side
}

// The bracket slot map. The winner of the key match
// takes the side of the target match.
var slotMap = map[Position]feed{
	{Quarterfinal, 0}: {Position{Semifinal, 0}, SideA},
	{Quarterfinal, 1}: {Position{Semifinal, 0}, SideB},
	{Quarterfinal, 2}: {Position{Semifinal, 1}, SideA},
	{Quarterfinal, 3}: {Position{Semifinal, 1}, SideB},
	{Semifinal, 0}:    {Position{Final, 0}, SideA},
	{Semifinal, 1}:    {Position{Final, 0}, SideB},
}

// FeedsInto returns the match and side that the winner of the
// match at p advances to. The final feeds into nothing.
func FeedsInto(p Position) (Position, Side, bool) {
	f, ok := slotMap[p]
	return f.target, f.side, ok
}

// A Bracket is the fixed elimination tree of 4 quarterfinals,
// 2 semifinals and the final.
//
// The matches are stored in arrays so a copy of a Bracket
// value is independent of the original.
type Bracket struct {
	Quarterfinals [4]MatchRecord `json:"quarterfinals"`
	Semifinals    [2]MatchRecord `json:"semifinals"`
	Final         MatchRecord    `json:"final"`
}

// Returns the match at p
func (b *Bracket) Match(p Position) (*MatchRecord, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %v index %d", ErrUnknownMatch, p.Round, p.Index)
	}
	switch p.Round {
	case Quarterfinal:
		return &b.Quarterfinals[p.Index], nil
	case Semifinal:
		return &b.Semifinals[p.Index], nil
	default:
		return &b.Final, nil
	}
}

// Returns the final's winner or nil
func (b *Bracket) Champion() *Participant {
	return b.Final.Winner
}

// BuildBracket seeds the quarterfinals with the top ranked
// participants of the standings. The semifinals and the
// final start with undetermined slots.
func BuildBracket(standings []StandingRow, settings Settings) (Bracket, error) {
	if len(standings) < Qualifiers {
		return Bracket{}, fmt.Errorf("%w: %d of %d", ErrInsufficientQualifiers, len(standings), Qualifiers)
	}

	qualifiers := topParticipants(standings, Qualifiers)

	var bracket Bracket
	for i, m := range seedMatchups(settings.Seeding) {
		a := qualifiers[m.seed1]
		b := qualifiers[m.seed2]
		bracket.Quarterfinals[i] = NewMatch(&a, &b, settings.QuarterfinalFormat)
	}
	for i := range bracket.Semifinals {
		bracket.Semifinals[i] = NewMatch(nil, nil, settings.SemifinalFormat)
	}
	bracket.Final = NewMatch(nil, nil, settings.FinalFormat)

	return bracket, nil
}

type seedMatchup struct {
	seed1 int
	seed2 int
}

func seedMatchups(seeding Seeding) []*seedMatchup {
	if seeding == SeedCrossBracket {
		return arrangeSeeds(3)
	}

	matchups := make([]*seedMatchup, 0, Quarterfinal.Size())
	for i := range Quarterfinal.Size() {
		matchups = append(matchups, &seedMatchup{2 * i, 2*i + 1})
	}
	return matchups
}

// Arranges the seeds for the first elimination round of
// a total of numRounds.
//
// The arrangement ensures that the top 2 seeds can only
// meet in the final, the top 4 seeds can only meet
// in the semi-final, etc...
//
// More info: https://en.wikipedia.org/wiki/Single-elimination_tournament#Seeding
func arrangeSeeds(numRounds int) []*seedMatchup {
	// Start with the final between the first two seeds
	matchups := []*seedMatchup{{0, 1}}
	totalSeeds := 2

	// Work down the tournament tree by round (semis, quarters, ...)
	for i := 1; i < numRounds; i += 1 {
		nextMatchups := make([]*seedMatchup, 0, totalSeeds)
		totalSeeds *= 2
		for _, parent := range matchups {
			s1 := parent.seed1
			s2 := parent.seed2

			nextMatchups = append(
				nextMatchups,
				&seedMatchup{s1, totalSeeds - 1 - s1},
				&seedMatchup{s2, totalSeeds - 1 - s2},
			)
		}

		matchups = nextMatchups
	}

	return matchups
}

// Checks the formats of every bracket match against the settings
func (b *Bracket) checkFormats(settings Settings) error {
	for _, p := range bracketPositions {
		m, _ := b.Match(p)
		if m.Format != settings.Format(p.Round) {
			return fmt.Errorf("%v is %v instead of %v", p, m.Format, settings.Format(p.Round))
		}
	}
	return nil
}
