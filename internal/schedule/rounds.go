package schedule

import (
	"errors"
	"math/rand/v2"
)

var (
	ErrTooFewTeams       = errors.New("at least two teams are required")
	ErrTooManyRounds     = errors.New("too many rounds for the number of teams")
	ErrInvalidRoundCount = errors.New("round count must not be negative")
)

// bye marks the empty seat added when the number of teams is odd
const bye = -1

// GenerateRounds draws a round-robin schedule with the circle method.
//
// The teams are shuffled once with rng (a nil rng uses the global source),
// the first seat stays fixed and the others rotate by one position after
// every round, so no pairing repeats while roundsCount <= len(teams)-1.
// An odd field gets an extra bye seat: whoever faces it sits the round out.
func GenerateRounds(teams []string, roundsCount int, rng *rand.Rand) ([]Round, error) {
	if len(teams) < 2 {
		return nil, ErrTooFewTeams
	}
	if roundsCount < 0 {
		return nil, ErrInvalidRoundCount
	}
	if roundsCount > len(teams)-1 {
		return nil, ErrTooManyRounds
	}

	seats := shuffle(teams, rng)
	if len(seats)%2 != 0 {
		seats = append(seats, bye)
	}
	n := len(seats)

	rounds := make([]Round, 0, roundsCount)
	for r := 0; r < roundsCount; r++ {
		round := make(Round, 0, len(teams)/2)
		for i := 0; i < n/2; i++ {
			a, b := seats[i], seats[n-1-i]
			if a == bye || b == bye {
				continue
			}
			round = append(round, Match{TeamA: teams[a], TeamB: teams[b]})
		}
		rounds = append(rounds, round)

		// rotate everything but the first seat
		last := seats[n-1]
		copy(seats[2:], seats[1:n-1])
		seats[1] = last
	}

	return rounds, nil
}

// Fisher-Yates over team indices so the caller's slice keeps its order
func shuffle(teams []string, rng *rand.Rand) []int {
	seats := make([]int, len(teams), len(teams)+1)
	for i := range seats {
		seats[i] = i
	}

	swap := func(i, j int) { seats[i], seats[j] = seats[j], seats[i] }
	if rng == nil {
		rand.Shuffle(len(seats), swap)
	} else {
		rng.Shuffle(len(seats), swap)
	}
	return seats
}
