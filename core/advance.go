package core

import "fmt"

// Advance moves the winner of the match at pos into its slot of the
// next match and returns the updated copy of the bracket.
//
// Advancing the final returns the champion and leaves the bracket
// unchanged. Advancing the same winner again is a no-op. A slot that
// already holds a different participant is an ErrBracketCorruption.
func Advance(bracket Bracket, pos Position) (Bracket, *Participant, error) {
	match, err := bracket.Match(pos)
	if err != nil {
		return bracket, nil, err
	}
	if !match.HasWinner() {
		return bracket, nil, fmt.Errorf("%w: %v", ErrMatchUndecided, pos)
	}
	winner := match.Winner

	target, side, ok := FeedsInto(pos)
	if !ok {
		return bracket, winner, nil
	}

	next, _ := bracket.Match(target)
	slot := next.slot(side)
	switch {
	case *slot == nil:
		w := *winner
		*slot = &w
	case !sameParticipant(*slot, winner):
		return bracket, nil, fmt.Errorf(
			"%w: slot %v of %v holds %v instead of %v",
			ErrBracketCorruption,
			side,
			target,
			*slot,
			winner,
		)
	}

	return bracket, nil, nil
}
