package core

import "github.com/ezBadminton/gocup/esports"

// GenerateSchedule creates one best-of-1 match for every unordered
// pair of participants.
//
// The pairs are in a fixed order: the outer index ascending, then
// the inner index ascending (0v1, 0v2, ..., 1v2, ...). The first
// participant of a pair always takes slot A.
func GenerateSchedule(participants []Participant) []MatchRecord {
	n := len(participants)
	if n < 2 {
		return []MatchRecord{}
	}

	slots := make([]*Participant, n)
	for i := range participants {
		p := participants[i]
		slots[i] = &p
	}

	matches := make([]MatchRecord, 0, n*(n-1)/2)
	for i := range n {
		for j := i + 1; j < n; j++ {
			matches = append(matches, NewMatch(slots[i], slots[j], esports.BestOf1))
		}
	}

	return matches
}

// Returns the index of the match between the participants at i and j
// (i < j) in the schedule of n participants
func scheduleIndex(i, j, n int) int {
	return i*n - i*(i+1)/2 + j - i - 1
}

// ScheduleRounds groups the schedule indices of n participants into
// rounds in which every participant plays at most once.
//
// It does not change the order of the schedule itself, the rounds are
// a presentation of it. With an odd n one participant sits out each round.
func ScheduleRounds(n int) [][]int {
	if n < 2 {
		return [][]int{}
	}

	numSlots := n
	if numSlots%2 != 0 {
		// The extra slot is a bye
		numSlots += 1
	}
	numRounds := numSlots - 1
	numMatches := numSlots / 2

	rounds := make([][]int, 0, numRounds)
	for roundI := range numRounds {
		round := make([]int, 0, numMatches)
		for matchI := range numMatches {
			i1, i2 := pickOpponents(numSlots, roundI, matchI)
			if i1 >= n || i2 >= n {
				continue
			}
			round = append(round, scheduleIndex(min(i1, i2), max(i1, i2), n))
		}
		rounds = append(rounds, round)
	}

	return rounds
}

// Returns the opponent indices of the specified match by
// its round and match index
func pickOpponents(numSlots, roundI, matchI int) (int, int) {
	i1 := matchI
	i2 := numSlots - 1 - matchI

	i1 = roundRobinCircleIndex(i1, numSlots, roundI)
	i2 = roundRobinCircleIndex(i2, numSlots, roundI)

	return i1, i2
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	index += 1
	return index
}
