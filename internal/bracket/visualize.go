package bracket

import (
	"fmt"
	"strings"
)

// Visualize draws the bracket as an indented text tree, e.g.
//
//	n3
//	    |-- n0 [A,B]
//	    `-- n2 [E]
//	        `-- n1 [C,D]
//
// followed by the consolation match when there is one. Names maps team ids
// to display names; unknown ids are shown as ID<n>.
func Visualize(root *Node, names map[int]string) string {
	if root == nil {
		return "(empty)"
	}

	var b strings.Builder
	visualize(&b, root, names, "", true, true)

	if root.Consolation != nil {
		c := root.Consolation
		fmt.Fprintf(&b, "\nConsolation (3rd-place):\n  %s vs %s\n",
			teamLabel(slot(c, 0), names), teamLabel(slot(c, 1), names))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func visualize(b *strings.Builder, n *Node, names map[int]string, prefix string, isTail, isRoot bool) {
	connector := ""
	if !isRoot {
		connector = "|-- "
		if isTail {
			connector = "`-- "
		}
	}
	b.WriteString(prefix + connector + nodeLabel(n, names) + "\n")

	children := make([]*Node, 0, 2)
	if n.Left != nil {
		children = append(children, n.Left)
	}
	if n.Right != nil {
		children = append(children, n.Right)
	}

	childPrefix := prefix + "|   "
	if isTail {
		childPrefix = prefix + "    "
	}
	for i, child := range children {
		visualize(b, child, names, childPrefix, i == len(children)-1, false)
	}
}

func nodeLabel(n *Node, names map[int]string) string {
	labels := make([]string, 0, len(n.Teams))
	for _, t := range n.Teams {
		labels = append(labels, teamLabel(t, names))
	}
	if len(labels) == 0 {
		return n.ID
	}
	return n.ID + " [" + strings.Join(labels, ",") + "]"
}

func teamLabel(team int, names map[int]string) string {
	if team == NoTeam {
		return "TBD"
	}
	if name, ok := names[team]; ok {
		return name
	}
	return fmt.Sprintf("ID%d", team)
}

func slot(n *Node, i int) int {
	if i < len(n.Teams) {
		return n.Teams[i]
	}
	return NoTeam
}
