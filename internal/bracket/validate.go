package bracket

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

var (
	ErrDuplicateID          = errors.New("duplicate node id")
	ErrSharedNode           = errors.New("node has more than one parent")
	ErrTooManyTeams         = errors.New("node holds more than two teams")
	ErrInvalidWinner        = errors.New("winner index set on a node that cannot have a winner")
	ErrMisplacedConsolation = errors.New("consolation match outside the root")
)

func nodeHash(n *Node) string {
	return n.ID
}

// Validate checks a bracket that was built elsewhere, typically one decoded
// from a saved tournament, before SetWinner is allowed to work on it.
//
// The bracket is loaded into a directed graph keyed by node id, which
// catches duplicate ids and any node reachable from two parents.
func Validate(root *Node) error {
	if root == nil {
		return nil
	}

	g := graph.New(nodeHash, graph.Directed(), graph.PreventCycles())
	seen := make(map[*Node]bool)

	var add func(n *Node, isRoot bool) error
	add = func(n *Node, isRoot bool) error {
		if seen[n] {
			return fmt.Errorf("%w: %s", ErrSharedNode, n.ID)
		}
		seen[n] = true

		if err := checkNode(n); err != nil {
			return err
		}
		if err := g.AddVertex(n); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
			}
			return err
		}

		if n.Consolation != nil {
			if !isRoot {
				return fmt.Errorf("%w: %s", ErrMisplacedConsolation, n.ID)
			}
			if !n.Consolation.IsLeaf() || n.Consolation.Consolation != nil {
				return fmt.Errorf("%w: %s has children", ErrMisplacedConsolation, n.Consolation.ID)
			}
		}

		for _, child := range []*Node{n.Consolation, n.Left, n.Right} {
			if child == nil {
				continue
			}
			if err := add(child, false); err != nil {
				return err
			}
			if err := g.AddEdge(n.ID, child.ID); err != nil {
				if errors.Is(err, graph.ErrEdgeAlreadyExists) || errors.Is(err, graph.ErrEdgeCreatesCycle) {
					return fmt.Errorf("%w: %s", ErrSharedNode, child.ID)
				}
				return err
			}
		}
		return nil
	}

	if err := add(root, true); err != nil {
		return err
	}

	predecessors, err := g.PredecessorMap()
	if err != nil {
		return err
	}
	for id, parents := range predecessors {
		if id != root.ID && len(parents) != 1 {
			return fmt.Errorf("%w: %s", ErrSharedNode, id)
		}
	}

	return nil
}

func checkNode(n *Node) error {
	if len(n.Teams) > 2 {
		return fmt.Errorf("%w: %s", ErrTooManyTeams, n.ID)
	}
	if n.WinnerIndex != nil {
		idx := *n.WinnerIndex
		if (idx != 0 && idx != 1) || !n.Ready() {
			return fmt.Errorf("%w: %s", ErrInvalidWinner, n.ID)
		}
	}
	return nil
}
