package core

import (
	"fmt"

	"github.com/ezBadminton/gocup/esports"
)

const (
	// Hard bounds of the roster size
	MinTeams = 8
	MaxTeams = 16

	// Number of participants promoted into the bracket
	Qualifiers = 8
)

// Seeding controls how the qualifiers are paired in the quarterfinals
type Seeding int

const (
	// Rank 1 vs 2, 3 vs 4, ...
	SeedAdjacent Seeding = iota
	// Rank 1 vs 8, 4 vs 5, 2 vs 7, 3 vs 6
	SeedCrossBracket
)

var seedingNames = map[Seeding]string{
	SeedAdjacent:     "adjacent",
	SeedCrossBracket: "cross",
}

func (s Seeding) String() string {
	name, ok := seedingNames[s]
	if !ok {
		return fmt.Sprintf("Seeding(%d)", int(s))
	}
	return name
}

func (s Seeding) MarshalText() ([]byte, error) {
	name, ok := seedingNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: unknown seeding %d", ErrInvalidSettings, int(s))
	}
	return []byte(name), nil
}

func (s *Seeding) UnmarshalText(text []byte) error {
	parsed, err := ParseSeeding(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseSeeding(name string) (Seeding, error) {
	for s, n := range seedingNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown seeding %q", ErrInvalidSettings, name)
}

// Settings are the rules of a tournament. A started tournament
// keeps the settings it was started with.
type Settings struct {
	MinParticipants int `json:"minParticipants"`
	MaxParticipants int `json:"maxParticipants"`

	PointsPerWin int `json:"pointsPerWin"`

	QuarterfinalFormat esports.BestOf `json:"quarterfinalFormat"`
	SemifinalFormat    esports.BestOf `json:"semifinalFormat"`
	FinalFormat        esports.BestOf `json:"finalFormat"`

	Seeding Seeding `json:"seeding"`
}

func DefaultSettings() Settings {
	return Settings{
		MinParticipants:    MinTeams,
		MaxParticipants:    MaxTeams,
		PointsPerWin:       3,
		QuarterfinalFormat: esports.BestOf3,
		SemifinalFormat:    esports.BestOf3,
		FinalFormat:        esports.BestOf5,
		Seeding:            SeedAdjacent,
	}
}

// Validate checks that the settings stay inside the
// hard bounds of the tournament format.
func (s Settings) Validate() error {
	switch {
	case s.MinParticipants < MinTeams:
		return fmt.Errorf("%w: minimum participants below %d", ErrInvalidSettings, MinTeams)
	case s.MaxParticipants > MaxTeams:
		return fmt.Errorf("%w: maximum participants above %d", ErrInvalidSettings, MaxTeams)
	case s.MinParticipants > s.MaxParticipants:
		return fmt.Errorf("%w: minimum participants above maximum", ErrInvalidSettings)
	case s.PointsPerWin <= 0:
		return fmt.Errorf("%w: points per win must be positive", ErrInvalidSettings)
	}

	for _, f := range []esports.BestOf{s.QuarterfinalFormat, s.SemifinalFormat, s.FinalFormat} {
		if !f.Valid() {
			return fmt.Errorf("%w: unknown format %d", ErrInvalidSettings, int(f))
		}
	}

	if _, ok := seedingNames[s.Seeding]; !ok {
		return fmt.Errorf("%w: unknown seeding %d", ErrInvalidSettings, int(s.Seeding))
	}

	return nil
}

// Returns the best-of format of the given bracket round
func (s Settings) Format(round BracketRound) esports.BestOf {
	switch round {
	case Quarterfinal:
		return s.QuarterfinalFormat
	case Semifinal:
		return s.SemifinalFormat
	default:
		return s.FinalFormat
	}
}
