package diagram

import (
	"encoding/json"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
)

// Grid is a dense matrix of cells, indexed by column x and row y.
type Grid struct {
	rows [][]Cell
}

func (g Grid) Width() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}

func (g Grid) Height() int {
	return len(g.rows)
}

// At returns the cell in column x, row y. Positions outside the grid are
// empty.
func (g Grid) At(x, y int) Cell {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return Cell{}
	}
	return g.rows[y][x]
}

// Rows returns the cells row by row. The slices are shared with the grid.
func (g Grid) Rows() [][]Cell {
	return g.rows
}

// Locate returns the position of the match with the given id.
func (g Grid) Locate(nodeID string) (x, y int, ok bool) {
	for row, cells := range g.rows {
		for col, cell := range cells {
			if cell.Kind == NodeCell && cell.Node.ID == nodeID {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

func (g Grid) MarshalJSON() ([]byte, error) {
	if g.rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.rows)
}

type point struct {
	x, y int
}

type branch int

const (
	leftBranch branch = iota
	rightBranch
)

type layouter struct {
	cells    map[point]Cell
	maxDepth int
}

// Layout places the matches of a bracket on a grid for rendering as a table.
//
// Matches sit in even columns, the final on the right and the first round
// in column 0, each match vertically centred between the two feeding it.
// Odd columns hold the connectors, and when the root has a consolation
// match it is drawn left of the final, tied to both semifinals by Vertical
// connectors. Trees of depth 0 or 1 use fixed positions instead.
//
// The tree is only read. A nil root gives an empty grid.
func Layout(root *bracket.Node) Grid {
	if root == nil {
		return Grid{}
	}

	l := &layouter{
		cells:    make(map[point]Cell),
		maxDepth: bracket.MaxDepth(root),
	}
	l.place(root, 0, nil, leftBranch)
	return l.grid()
}

func (l *layouter) place(n *bracket.Node, depth int, parent *point, side branch) point {
	var p point
	switch {
	case l.maxDepth <= 1 && parent == nil:
		p = point{2, 2}
	case l.maxDepth <= 1:
		p = point{0, 0}
		if side == rightBranch {
			p.y = 4
		}
	case parent == nil:
		p = point{l.maxDepth * 2, 1<<l.maxDepth - 1}
	default:
		offset := 1 << (l.maxDepth - depth)
		if side == leftBranch {
			offset = -offset
		}
		p = point{parent.x - 2, parent.y + offset}
	}

	l.cells[p] = Cell{Kind: NodeCell, Node: n}

	var leftPos, rightPos *point
	if n.Left != nil {
		pos := l.place(n.Left, depth+1, &p, leftBranch)
		leftPos = &pos
	}
	if n.Right != nil {
		pos := l.place(n.Right, depth+1, &p, rightBranch)
		rightPos = &pos
	}

	switch {
	case leftPos != nil && rightPos != nil:
		l.connect(*leftPos, p, UpDownToMiddle)
		if n.Consolation != nil {
			l.cells[point{p.x - 2, p.y}] = Cell{Kind: NodeCell, Node: n.Consolation}
			l.connect(*leftPos, p, Vertical)
			l.connect(*rightPos, p, Vertical)
		}
	case leftPos != nil:
		l.connect(*leftPos, p, UpToDown)
	case rightPos != nil:
		l.connect(*rightPos, p, DownToUp)
	}

	return p
}

func (l *layouter) connect(child, parent point, t ConnectorType) {
	dy := abs(child.y - parent.y)

	anchor := point{child.x + 1, child.y}
	length := dy + 1
	switch t {
	case DownToUp:
		anchor = point{parent.x - 1, parent.y}
	case UpDownToMiddle:
		length = 2*length - 1
	case Vertical:
		anchor = point{child.x, min(child.y, parent.y) + 1}
		length = dy - 1
	}
	if length < 1 {
		return
	}

	l.cells[anchor] = Cell{Kind: ConnectorCell, Connector: &Connector{Length: length, Type: t}}
	for i := 1; i < length; i++ {
		l.cells[point{anchor.x, anchor.y + i}] = Cell{Kind: ExpansionCell}
	}
}

func (l *layouter) grid() Grid {
	width, height := 0, 0
	for p := range l.cells {
		width = max(width, p.x+1)
		height = max(height, p.y+1)
	}

	rows := make([][]Cell, height)
	for y := range rows {
		rows[y] = make([]Cell, width)
	}
	for p, cell := range l.cells {
		rows[p.y][p.x] = cell
	}
	return Grid{rows: rows}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
