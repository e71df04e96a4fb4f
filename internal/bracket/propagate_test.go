package bracket

import (
	"testing"

	"github.com/AdamBeresnev/cochonnet/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWinner_FourTeams(t *testing.T) {
	root := GenerateTree([]int{1, 2, 3, 4})
	require.NotNil(t, root.Consolation)
	assert.Equal(t, []int{1, 2}, root.Left.Teams)
	assert.Equal(t, []int{3, 4}, root.Right.Teams)

	SetWinner(root, root.Left.ID, 0)
	assert.Equal(t, 1, root.Teams[0])
	assert.Equal(t, 2, root.Consolation.Teams[0])

	SetWinner(root, root.Right.ID, 1)
	assert.Equal(t, []int{1, 4}, root.Teams)
	assert.Equal(t, []int{2, 3}, root.Consolation.Teams)
	assert.True(t, root.Ready())
	assert.Nil(t, root.WinnerIndex)

	SetWinner(root, root.ID, 1)
	SetWinner(root, ConsolationID, 0)

	assert.Equal(t, Podium{First: 4, Second: 1, Third: 2}, PodiumOf(root))
}

func TestSetWinner_Idempotent(t *testing.T) {
	once := GenerateTree([]int{1, 2, 3, 4})
	twice := GenerateTree([]int{1, 2, 3, 4})

	SetWinner(once, "n0", 0)
	SetWinner(twice, "n0", 0)
	SetWinner(twice, "n0", 0)

	assert.Equal(t, once, twice)
}

func TestSetWinner_FlipRederivesAncestors(t *testing.T) {
	root := GenerateTree([]int{1, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t, "n6", root.ID)

	for _, step := range []struct {
		id  string
		idx int
	}{
		{"n0", 0}, {"n1", 0}, {"n4", 0},
		{"n2", 0}, {"n3", 0}, {"n5", 1},
		{"n6", 0},
	} {
		SetWinner(root, step.id, step.idx)
	}

	assert.Equal(t, []int{1, 3}, Find(root, "n4").Teams)
	assert.Equal(t, []int{1, 7}, root.Teams)
	assert.Equal(t, []int{3, 5}, root.Consolation.Teams)
	champion, _ := root.Winner()
	assert.Equal(t, 1, champion)

	SetWinner(root, "n0", 1)

	assert.Equal(t, utils.Ptr(1), Find(root, "n0").WinnerIndex)
	assert.Equal(t, []int{2, 3}, Find(root, "n4").Teams)
	assert.Equal(t, utils.Ptr(0), Find(root, "n4").WinnerIndex)
	assert.Equal(t, []int{2, 7}, root.Teams)
	assert.Equal(t, []int{3, 5}, root.Consolation.Teams)
	champion, _ = root.Winner()
	assert.Equal(t, 2, champion)

	// the other half is untouched
	assert.Equal(t, []int{5, 7}, Find(root, "n5").Teams)
	assert.Equal(t, utils.Ptr(1), Find(root, "n5").WinnerIndex)
}

func TestSetWinner_Bye(t *testing.T) {
	root := GenerateTree([]int{1, 2, 3, 4, 5})
	bye := Find(root, "n2")
	require.NotNil(t, bye)

	SetWinner(root, "n2", 0)
	assert.Nil(t, bye.WinnerIndex, "bye match cannot be decided before its opponent is known")

	SetWinner(root, "n1", 1)
	assert.Equal(t, []int{5, 4}, bye.Teams)
	assert.Empty(t, root.Teams, "an undecided bye match reports nothing upward")

	SetWinner(root, "n2", 0)
	assert.Equal(t, []int{NoTeam, 5}, root.Teams)
	assert.Equal(t, []int{NoTeam, 4}, root.Consolation.Teams)
	assert.False(t, root.Ready())

	SetWinner(root, "n0", 0)
	assert.Equal(t, []int{1, 5}, root.Teams)
	assert.Equal(t, []int{2, 4}, root.Consolation.Teams)
}

func TestSetWinner_NoOps(t *testing.T) {
	testCases := []struct {
		name   string
		nodeID string
		index  int
	}{
		{name: "unknown id", nodeID: "n99", index: 0},
		{name: "internal node without teams", nodeID: "n2", index: 0},
		{name: "empty consolation", nodeID: ConsolationID, index: 1},
		{name: "index out of range", nodeID: "n0", index: 2},
		{name: "negative index", nodeID: "n1", index: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := GenerateTree([]int{1, 2, 3, 4})
			untouched := GenerateTree([]int{1, 2, 3, 4})

			result := SetWinner(root, tc.nodeID, tc.index)

			assert.Same(t, root, result)
			assert.Equal(t, untouched, root)
		})
	}

	assert.Nil(t, SetWinner(nil, "n0", 0))
}

func TestSetWinner_HalfFilledParent(t *testing.T) {
	root := GenerateTree([]int{1, 2, 3, 4})

	SetWinner(root, "n1", 0)
	assert.Equal(t, []int{NoTeam, 3}, root.Teams)
	assert.Equal(t, []int{NoTeam, 4}, root.Consolation.Teams)

	SetWinner(root, root.ID, 1)
	assert.Nil(t, root.WinnerIndex)

	SetWinner(root, "n0", 1)
	assert.Equal(t, []int{2, 3}, root.Teams)
	assert.Equal(t, []int{1, 4}, root.Consolation.Teams)
}

func TestSetWinner_SingleMatch(t *testing.T) {
	root := GenerateTree([]int{8, 9})

	SetWinner(root, "n0", 1)

	assert.True(t, IsComplete(root))
	assert.False(t, IsConsolationComplete(root))
	assert.Equal(t, Podium{First: 9, Second: 8}, PodiumOf(root))
}
