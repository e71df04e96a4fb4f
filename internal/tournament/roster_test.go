package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWithTeams(t *testing.T, names ...string) *State {
	t.Helper()
	s := New()
	for _, name := range names {
		_, err := s.AddTeam(name)
		require.NoError(t, err)
	}
	return s
}

func TestAddTeam(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    Team
		expectedErr error
	}{
		{name: "new team", input: "Les Pointeurs", expected: Team{ID: 3, Name: "Les Pointeurs"}},
		{name: "trimmed", input: "  Carreau  ", expected: Team{ID: 3, Name: "Carreau"}},
		{name: "empty", input: "   ", expectedErr: ErrEmptyName},
		{name: "duplicate", input: "Alpha", expectedErr: ErrDuplicateName},
		{name: "duplicate after trim", input: " Beta ", expectedErr: ErrDuplicateName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newWithTeams(t, "Alpha", "Beta")

			team, err := s.AddTeam(tc.input)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Len(t, s.Teams, 2)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, team)
			assert.Equal(t, tc.expected, s.Teams[2])
		})
	}
}

func TestAddTeam_ReusesSmallestFreeID(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C", "D")

	require.NoError(t, s.RemoveTeam(2))
	require.NoError(t, s.RemoveTeam(1))

	e, err := s.AddTeam("E")
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)

	f, err := s.AddTeam("F")
	require.NoError(t, err)
	assert.Equal(t, 2, f.ID)

	g, err := s.AddTeam("G")
	require.NoError(t, err)
	assert.Equal(t, 5, g.ID)
}

func TestRemoveTeam(t *testing.T) {
	s := newWithTeams(t, "A", "B")

	assert.ErrorIs(t, s.RemoveTeam(9), ErrTeamNotFound)
	require.NoError(t, s.RemoveTeam(1))
	assert.Equal(t, []Team{{ID: 2, Name: "B"}}, s.Teams)
}

func TestRoster_LockedAfterPhase1(t *testing.T) {
	s := newWithTeams(t, "A", "B", "C")
	require.NoError(t, s.StartPhase1(nil))

	_, err := s.AddTeam("D")
	assert.ErrorIs(t, err, ErrRosterLocked)
	assert.ErrorIs(t, s.RemoveTeam(1), ErrRosterLocked)
	_, err = s.ImportTeams("D E")
	assert.ErrorIs(t, err, ErrRosterLocked)
}

func TestImportTeams(t *testing.T) {
	s := newWithTeams(t, "Alpha")

	added, err := s.ImportTeams(`Alpha  "Les Boulistes" Gamma “La Mène”`)
	require.NoError(t, err)

	assert.Equal(t, []Team{
		{ID: 2, Name: "Les Boulistes"},
		{ID: 3, Name: "Gamma"},
		{ID: 4, Name: "La Mène"},
	}, added)
	assert.Len(t, s.Teams, 4)
}

func TestFindTeam(t *testing.T) {
	s := newWithTeams(t, "Les Boulistes", "Les Pointeurs", "Carreau Club", "Tireurs")

	testCases := []struct {
		name        string
		query       string
		expected    string
		expectedErr error
	}{
		{name: "exact", query: "Tireurs", expected: "Tireurs"},
		{name: "case insensitive", query: "carreau club", expected: "Carreau Club"},
		{name: "fuzzy", query: "crclub", expected: "Carreau Club"},
		{name: "ambiguous", query: "les", expectedErr: ErrAmbiguousTeam},
		{name: "no match", query: "xyz", expectedErr: ErrTeamNotFound},
		{name: "empty", query: " ", expectedErr: ErrTeamNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			team, err := s.FindTeam(tc.query)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, team.Name)
		})
	}
}
