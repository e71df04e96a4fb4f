package bracket

// Walk visits the tree in pre-order: a node, its consolation match, then
// the left and right subtrees. Returning false from fn stops the walk.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	if n.Consolation != nil && !fn(n.Consolation, depth) {
		return false
	}
	return walk(n.Left, depth+1, fn) && walk(n.Right, depth+1, fn)
}

// Find returns the node with the given id, the consolation match included.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// MaxDepth is the length of the longest root to leaf path. The root is at
// depth 0 and the consolation match does not count.
func MaxDepth(root *Node) int {
	if root == nil {
		return 0
	}
	return maxDepth(root, 0)
}

func maxDepth(n *Node, depth int) int {
	deepest := depth
	if n.Left != nil {
		deepest = max(deepest, maxDepth(n.Left, depth+1))
	}
	if n.Right != nil {
		deepest = max(deepest, maxDepth(n.Right, depth+1))
	}
	return deepest
}

// Count returns the number of matches in the tree, consolation included.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// TeamIDs lists the seeded teams, those on leaves and byes, in bracket order.
func TeamIDs(root *Node) []int {
	var ids []int
	var collect func(n *Node)
	collect = func(n *Node) {
		if n == nil {
			return
		}
		switch {
		case n.IsLeaf():
			for _, t := range n.Teams {
				if t != NoTeam {
					ids = append(ids, t)
				}
			}
		case n.Left == nil && len(n.Teams) > 0:
			// a bye keeps its own team in slot 0, the right slot is fed from below
			ids = append(ids, n.Teams[0])
		}
		collect(n.Left)
		collect(n.Right)
	}
	collect(root)
	return ids
}

// Clone returns a deep copy of the tree.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:          n.ID,
		Teams:       append([]int{}, n.Teams...),
		Left:        Clone(n.Left),
		Right:       Clone(n.Right),
		Consolation: Clone(n.Consolation),
	}
	if n.WinnerIndex != nil {
		idx := *n.WinnerIndex
		c.WinnerIndex = &idx
	}
	return c
}
