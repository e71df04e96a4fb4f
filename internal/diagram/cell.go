package diagram

import (
	"encoding/json"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
)

type CellKind string

const (
	EmptyCell     CellKind = ""
	NodeCell      CellKind = "node"
	ConnectorCell CellKind = "connector"
	// ExpansionCell is covered by the connector above it, which spans
	// several rows.
	ExpansionCell CellKind = "expansion"
)

type ConnectorType string

const (
	UpToDown       ConnectorType = "UpToDown"
	DownToUp       ConnectorType = "DownToUp"
	UpDownToMiddle ConnectorType = "UpDownToMiddle"
	Vertical       ConnectorType = "Vertical"
)

// Connector links a match to the matches feeding it. Length is the number
// of rows it spans, starting at its own cell.
type Connector struct {
	Length int           `json:"length"`
	Type   ConnectorType `json:"type"`
}

// Cell is one position of the grid. Node is set for NodeCell and Connector
// for ConnectorCell, both are nil otherwise.
type Cell struct {
	Kind      CellKind
	Node      *bracket.Node
	Connector *Connector
}

type nodeJSON struct {
	ID          string `json:"id"`
	Teams       []int  `json:"teams"`
	WinnerIndex *int   `json:"winnerIndex,omitempty"`
}

// MarshalJSON writes null for an empty cell. A node cell only carries the
// match itself, not its subtree.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case NodeCell:
		return json.Marshal(struct {
			Kind CellKind `json:"kind"`
			Node nodeJSON `json:"node"`
		}{
			Kind: c.Kind,
			Node: nodeJSON{ID: c.Node.ID, Teams: c.Node.Teams, WinnerIndex: c.Node.WinnerIndex},
		})
	case ConnectorCell:
		return json.Marshal(struct {
			Kind      CellKind   `json:"kind"`
			Connector *Connector `json:"connector"`
		}{Kind: c.Kind, Connector: c.Connector})
	case ExpansionCell:
		return []byte(`{"kind":"expansion"}`), nil
	default:
		return []byte("null"), nil
	}
}
