package tournament

import (
	"math/rand/v2"
	"testing"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
	"github.com/AdamBeresnev/cochonnet/internal/schedule"
	"github.com/AdamBeresnev/cochonnet/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// scoreAll gives every match a result where the team listed first in the
// roster wins by the gap between the two roster positions.
func scoreAll(t *testing.T, s *State) {
	t.Helper()
	pos := make(map[string]int)
	for i, team := range s.Teams {
		pos[team.Name] = i
	}
	for r, round := range s.Rounds {
		for m, match := range round {
			a, b := pos[match.TeamA], pos[match.TeamB]
			scoreA, scoreB := 13, 13-abs(a-b)
			if a > b {
				scoreA, scoreB = scoreB, scoreA
			}
			require.NoError(t, s.SetMatchScore(r, m, utils.Ptr(scoreA), utils.Ptr(scoreB)))
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSetSettings(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C")

	require.NoError(t, s.SetSettings("  Open de Marseille ", 2))
	assert.Equal(t, "Open de Marseille", s.Name)
	assert.Equal(t, 2, s.Matches)

	assert.ErrorIs(t, s.SetSettings("x", 0), ErrInvalidMatches)

	require.NoError(t, s.StartPhase1(seeded()))
	assert.ErrorIs(t, s.SetSettings("x", 1), ErrRosterLocked)
	require.NoError(t, s.SetSettings("Renamed", 2))
	assert.Equal(t, "Renamed", s.Name)
}

func TestStartPhase1(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C", "D", "E")
	require.NoError(t, s.SetSettings("", 3))
	assert.Equal(t, PhaseSetup, s.Phase())

	require.NoError(t, s.StartPhase1(seeded()))
	assert.Equal(t, Phase1, s.Phase())
	require.Len(t, s.Rounds, 3)
	for _, round := range s.Rounds {
		assert.Len(t, round, 2)
	}
	assert.Equal(t, []float64{0, 0, 0}, s.Progress())

	require.NoError(t, s.SetMatchScore(0, 1, utils.Ptr(13), utils.Ptr(4)))
	assert.Equal(t, []float64{0.5, 0, 0}, s.Progress())
	assert.ErrorIs(t, s.SetMatchScore(3, 0, utils.Ptr(1), utils.Ptr(2)), schedule.ErrMatchNotFound)
}

func TestStartPhase1_Errors(t *testing.T) {
	lonely := newWithTeams(t, "A")
	assert.ErrorIs(t, lonely.StartPhase1(nil), schedule.ErrTooFewTeams)

	crowded := newWithTeams(t, "A", "B", "C")
	require.NoError(t, crowded.SetSettings("", 3))
	assert.ErrorIs(t, crowded.StartPhase1(nil), schedule.ErrTooManyRounds)

	fresh := New()
	assert.ErrorIs(t, fresh.SetMatchScore(0, 0, nil, nil), ErrPhase1NotStarted)
	assert.ErrorIs(t, fresh.StartPhase2(), ErrPhase1NotStarted)
}

func TestStartPhase2(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C", "D", "E", "F")
	require.NoError(t, s.SetSettings("", 5))
	require.NoError(t, s.StartPhase1(seeded()))
	scoreAll(t, s)

	ranked := s.Ranking()
	require.Len(t, ranked, 6)
	assert.Equal(t, "A", ranked[0].Team)
	assert.Equal(t, "F", ranked[5].Team)

	require.NoError(t, s.StartPhase2())
	assert.Equal(t, Phase2, s.Phase())
	assert.Equal(t, &Groups{Winners: []int{1, 2, 3, 4}, Consolation: []int{5, 6}}, s.Phase2Groups)

	winners, err := s.Bracket(WinnersTree)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, winners.Left.Teams)
	assert.Equal(t, []int{3, 4}, winners.Right.Teams)
	require.NotNil(t, winners.Consolation)

	consolation, err := s.Bracket(ConsolationTree)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, consolation.Teams)

	assert.ErrorIs(t, s.StartPhase2(), ErrPhase2Started)
	assert.ErrorIs(t, s.StartPhase1(nil), ErrPhase2Started)
	assert.ErrorIs(t, s.SetMatchScore(0, 0, nil, nil), ErrPhase2Started)
}

func TestSetPhase2Winner_AndResults(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C", "D", "E", "F")
	require.NoError(t, s.SetSettings("", 5))
	require.NoError(t, s.StartPhase1(seeded()))
	scoreAll(t, s)
	require.NoError(t, s.StartPhase2())

	results, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, Results{}, results)

	require.NoError(t, s.SetPhase2Winner(WinnersTree, "n0", 0))
	require.NoError(t, s.SetPhase2Winner(WinnersTree, "n1", 1))
	require.NoError(t, s.SetPhase2Winner(WinnersTree, "n2", 1))
	require.NoError(t, s.SetPhase2Winner(WinnersTree, bracket.ConsolationID, 0))

	results, err = s.Results()
	require.NoError(t, err)
	assert.Equal(t, &Team{ID: 4, Name: "D"}, results.Winners.First)
	assert.Equal(t, &Team{ID: 1, Name: "A"}, results.Winners.Second)
	assert.Equal(t, &Team{ID: 2, Name: "B"}, results.Winners.Third)
	assert.False(t, results.BothFinished)

	require.NoError(t, s.SetPhase2Winner(ConsolationTree, "n0", 0))
	results, err = s.Results()
	require.NoError(t, err)
	assert.Equal(t, &Team{ID: 5, Name: "E"}, results.Consolation.First)
	assert.Nil(t, results.Consolation.Third)
	assert.True(t, results.BothFinished)

	assert.ErrorIs(t, s.SetPhase2Winner("losers", "n0", 0), ErrUnknownTree)
	assert.ErrorIs(t, s.SetPhase2Winner(WinnersTree, "n42", 0), ErrNodeNotFound)
}

func TestPhase2_NotStarted(t *testing.T) {
	s := newWithTeams(t, "A", "B")

	_, err := s.Bracket(WinnersTree)
	assert.ErrorIs(t, err, ErrPhase2NotStarted)
	assert.ErrorIs(t, s.SetPhase2Winner(WinnersTree, "n0", 0), ErrPhase2NotStarted)
	_, err = s.Results()
	assert.ErrorIs(t, err, ErrPhase2NotStarted)
}
