package ranking

import (
	"sort"

	"github.com/AdamBeresnev/cochonnet/internal/schedule"
	"github.com/AdamBeresnev/cochonnet/internal/utils"
)

type Entry struct {
	Team  string `json:"team"`
	Score int    `json:"score"`
}

// Compute scores the qualification phase. The winner of every scored match
// gains the point difference and the loser loses it, so the scores always
// sum to zero. Teams that played no scored match keep 0.
// The result is sorted by score, highest first, ties keeping input order.
func Compute(teams []string, rounds []schedule.Round) []Entry {
	scores := make(map[string]int, len(teams))
	for _, t := range teams {
		scores[t] = 0
	}

	for _, round := range rounds {
		for _, m := range round {
			if !m.Scored() {
				continue
			}
			_, okA := scores[m.TeamA]
			_, okB := scores[m.TeamB]
			if !okA || !okB {
				continue
			}

			a, b := utils.OrZero(m.ScoreA), utils.OrZero(m.ScoreB)
			diff := abs(a - b)
			switch {
			case a > b:
				scores[m.TeamA] += diff
				scores[m.TeamB] -= diff
			case b > a:
				scores[m.TeamB] += diff
				scores[m.TeamA] -= diff
			}
		}
	}

	entries := make([]Entry, 0, len(teams))
	for _, t := range teams {
		entries = append(entries, Entry{Team: t, Score: scores[t]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return entries
}

// CompetitionRanks numbers sorted entries for display: equal scores share a
// rank and the next score resumes at its position, e.g. 1, 1, 3.
func CompetitionRanks(entries []Entry) []int {
	ranks := make([]int, len(entries))
	for i, e := range entries {
		if i > 0 && e.Score == entries[i-1].Score {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Score
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
