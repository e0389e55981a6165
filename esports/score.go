package esports

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResult is the root of all score validation errors
	ErrInvalidResult = errors.New("invalid match result")

	ErrUnknownFormat = fmt.Errorf("%w: unknown best-of format", ErrInvalidResult)
	ErrNegativeScore = fmt.Errorf("%w: negative score", ErrInvalidResult)
	ErrEqualScore    = fmt.Errorf("%w: equal score", ErrInvalidResult)
	ErrNoWinner      = fmt.Errorf("%w: no side reached the winning threshold", ErrInvalidResult)
	ErrBothWinners   = fmt.Errorf("%w: both sides reached the winning threshold", ErrInvalidResult)
	ErrOvershoot     = fmt.Errorf("%w: winner exceeds the winning threshold", ErrInvalidResult)
)

// BestOf is the number of games a match is played over (MD1, MD3, MD5).
type BestOf int

const (
	BestOf1 BestOf = 1
	BestOf3 BestOf = 3
	BestOf5 BestOf = 5
)

// Returns the number of game wins needed to clinch
// the match: ceil((N+1)/2)
func (f BestOf) Threshold() int {
	return (int(f) + 2) / 2
}

func (f BestOf) Valid() bool {
	switch f {
	case BestOf1, BestOf3, BestOf5:
		return true
	}
	return false
}

func (f BestOf) String() string {
	return fmt.Sprintf("MD%d", int(f))
}

// ParseBestOf accepts the plain number of games (1, 3, 5).
func ParseBestOf(n int) (BestOf, error) {
	f := BestOf(n)
	if !f.Valid() {
		return 0, ErrUnknownFormat
	}
	return f, nil
}

// A validated match score counted in games won
type Score struct {
	A, B   int
	Format BestOf
}

// Returns either 0 or 1 whether the
// first opponent won or the second.
func (s Score) GetWinner() (int, error) {
	threshold := s.Format.Threshold()
	switch {
	case s.A == threshold && s.B < threshold:
		return 0, nil
	case s.B == threshold && s.A < threshold:
		return 1, nil
	}
	return -1, ErrNoWinner
}

func (s Score) String() string {
	return fmt.Sprintf("%d - %d (%v)", s.A, s.B, s.Format)
}

// NewScore validates the games won by each side against the
// best-of format. Exactly one side has to reach the threshold
// and it may not go past it.
func NewScore(a, b int, format BestOf) (Score, error) {
	if !format.Valid() {
		return Score{}, ErrUnknownFormat
	}

	threshold := format.Threshold()
	w := max(a, b)
	l := min(a, b)

	switch {
	case l < 0:
		return Score{}, ErrNegativeScore
	case w == l:
		return Score{}, ErrEqualScore
	case w < threshold:
		return Score{}, ErrNoWinner
	case l >= threshold:
		return Score{}, ErrBothWinners
	case w > threshold:
		return Score{}, ErrOvershoot
	}

	return Score{A: a, B: b, Format: format}, nil
}

// Lists every valid score of the format, the first
// opponent's wins before the second's.
func ValidScores(format BestOf) []Score {
	if !format.Valid() {
		return nil
	}
	threshold := format.Threshold()
	scores := make([]Score, 0, 2*threshold)
	for l := range threshold {
		scores = append(scores, Score{A: threshold, B: l, Format: format})
	}
	for l := range threshold {
		scores = append(scores, Score{A: l, B: threshold, Format: format})
	}
	return scores
}
