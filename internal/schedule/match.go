package schedule

import (
	"errors"

	"github.com/AdamBeresnev/cochonnet/internal/utils"
)

var ErrMatchNotFound = errors.New("match not found")

type Match struct {
	TeamA  string `json:"teamA"`
	TeamB  string `json:"teamB"`
	ScoreA *int   `json:"scoreA,omitempty"`
	ScoreB *int   `json:"scoreB,omitempty"`
}

type Round []Match

// Scored reports whether both scores have been entered.
func (m *Match) Scored() bool {
	return m.ScoreA != nil && m.ScoreB != nil
}

// Winner returns the name of the team with the higher score. A tie or an
// unscored match has no winner.
func (m *Match) Winner() (string, bool) {
	if !m.Scored() || *m.ScoreA == *m.ScoreB {
		return "", false
	}
	if *m.ScoreA > *m.ScoreB {
		return m.TeamA, true
	}
	return m.TeamB, true
}

// Progress is the share of scored matches in the round, between 0 and 1
func (r Round) Progress() float64 {
	if len(r) == 0 {
		return 0
	}
	filled := 0
	for i := range r {
		if r[i].Scored() {
			filled++
		}
	}
	return float64(filled) / float64(len(r))
}

// SetScore records both scores of one match. A nil score clears that side.
func SetScore(rounds []Round, roundIndex, matchIndex int, scoreA, scoreB *int) error {
	if roundIndex < 0 || roundIndex >= len(rounds) {
		return ErrMatchNotFound
	}
	round := rounds[roundIndex]
	if matchIndex < 0 || matchIndex >= len(round) {
		return ErrMatchNotFound
	}

	round[matchIndex].ScoreA = utils.Copy(scoreA)
	round[matchIndex].ScoreB = utils.Copy(scoreB)
	return nil
}
