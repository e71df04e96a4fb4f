package bracket

import "strconv"

type idSequence int

func (s *idSequence) next() string {
	id := "n" + strconv.Itoa(int(*s))
	*s++
	return id
}

// GenerateTree builds the elimination bracket for teams in seeding order.
//
// Teams are paired into leaves two at a time. With an odd count the last
// team gets a bye: it is placed one level up, in a node whose only child is
// the last leaf. Levels are then merged pair-wise from the left, an unpaired
// node moving up unchanged, until a single root is left. When the root has
// two children it also gets the consolation match for third place.
//
// Node ids are n0, n1, ... in build order. Nil is returned for no teams.
func GenerateTree(teamIDs []int) *Node {
	if len(teamIDs) == 0 {
		return nil
	}

	var ids idSequence
	leaves := make([]*Node, 0, len(teamIDs)/2+1)

	i := 0
	for ; i+1 < len(teamIDs); i += 2 {
		leaves = append(leaves, &Node{ID: ids.next(), Teams: []int{teamIDs[i], teamIDs[i+1]}})
	}

	if i < len(teamIDs) {
		leftover := teamIDs[i]
		if len(leaves) == 0 {
			return &Node{ID: ids.next(), Teams: []int{leftover}}
		}

		last := leaves[len(leaves)-1]
		leaves[len(leaves)-1] = &Node{ID: ids.next(), Teams: []int{leftover}, Right: last}
	}

	level := leaves
	for len(level) > 1 {
		next := make([]*Node, 0, (len(level)+1)/2)
		for j := 0; j < len(level); j += 2 {
			if j+1 == len(level) {
				next = append(next, level[j])
				continue
			}
			next = append(next, &Node{ID: ids.next(), Teams: []int{}, Left: level[j], Right: level[j+1]})
		}
		level = next
	}

	root := level[0]
	if root.Left != nil && root.Right != nil {
		root.Consolation = &Node{ID: ConsolationID, Teams: []int{}}
	}

	return root
}
