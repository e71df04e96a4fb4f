package bracket

// NoTeam fills a slot that has not been decided yet. Team ids start at 1.
const NoTeam = 0

const ConsolationID = "consolation"

// Node is one match of an elimination bracket. A parent owns its children
// exclusively, so a bracket is always a tree.
//
// Leaves start with their two teams, internal nodes start empty and are
// filled by SetWinner as the matches below them are decided. Only the root
// carries a Consolation node, the match for third place.
type Node struct {
	ID          string `json:"id"`
	Teams       []int  `json:"teams"`
	Left        *Node  `json:"left,omitempty"`
	Right       *Node  `json:"right,omitempty"`
	WinnerIndex *int   `json:"winnerIndex,omitempty"`
	Consolation *Node  `json:"consolation,omitempty"`
}

// Ready reports whether both teams of the match are known.
func (n *Node) Ready() bool {
	return len(n.Teams) == 2 && n.Teams[0] != NoTeam && n.Teams[1] != NoTeam
}

// Resolved reports whether a winner has been picked for a ready match.
func (n *Node) Resolved() bool {
	return n.Ready() && n.WinnerIndex != nil && (*n.WinnerIndex == 0 || *n.WinnerIndex == 1)
}

// Winner returns the winning team id of a resolved match.
func (n *Node) Winner() (int, bool) {
	if !n.Resolved() {
		return NoTeam, false
	}
	return n.Teams[*n.WinnerIndex], true
}

// Loser returns the losing team id of a resolved match.
func (n *Node) Loser() (int, bool) {
	if !n.Resolved() {
		return NoTeam, false
	}
	return n.Teams[1-*n.WinnerIndex], true
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

func (n *Node) setSlot(slot, team int) {
	for len(n.Teams) <= slot {
		n.Teams = append(n.Teams, NoTeam)
	}
	n.Teams[slot] = team
}
