package bracket

// SetWinner records winnerIndex (0 or 1) as the result of the match nodeID
// and threads the outcome through the tree: the winner moves up into the
// parent's slot for that side and, below the root, the loser moves into the
// same slot of the consolation match.
//
// Picking a winner for a match that does not have two teams yet, an unknown
// id or an index other than 0 or 1 leaves the tree unchanged. Calling it
// again with another index overwrites the earlier result and every
// already-decided match above it is fed the new team in that slot.
//
// The tree is modified in place and returned.
func SetWinner(root *Node, nodeID string, winnerIndex int) *Node {
	if winnerIndex != 0 && winnerIndex != 1 {
		return root
	}
	setWinner(root, nodeID, winnerIndex)
	return root
}

// setWinner returns the winning index of n when n has a result that its
// parent needs to pick up.
func setWinner(n *Node, nodeID string, winnerIndex int) (int, bool) {
	if n == nil {
		return 0, false
	}

	if n.ID == nodeID {
		if !n.Ready() {
			return 0, false
		}
		idx := winnerIndex
		n.WinnerIndex = &idx
		return idx, true
	}

	if n.Consolation != nil {
		setWinner(n.Consolation, nodeID, winnerIndex)
	}
	leftIdx, fromLeft := setWinner(n.Left, nodeID, winnerIndex)
	rightIdx, fromRight := setWinner(n.Right, nodeID, winnerIndex)

	if !fromLeft && !fromRight {
		return 0, false
	}
	if fromLeft {
		n.advance(0, n.Left, leftIdx)
	}
	if fromRight {
		n.advance(1, n.Right, rightIdx)
	}

	if n.Ready() && n.WinnerIndex != nil {
		return *n.WinnerIndex, true
	}
	return 0, false
}

func (n *Node) advance(slot int, child *Node, idx int) {
	n.setSlot(slot, child.Teams[idx])
	if n.Consolation != nil {
		n.Consolation.setSlot(slot, child.Teams[1-idx])
	}
}
