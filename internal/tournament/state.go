package tournament

import (
	"errors"
	"strings"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
	"github.com/AdamBeresnev/cochonnet/internal/schedule"
)

var (
	ErrEmptyName        = errors.New("team name is empty")
	ErrDuplicateName    = errors.New("team name already taken")
	ErrTeamNotFound     = errors.New("team not found")
	ErrAmbiguousTeam    = errors.New("team name matches several teams")
	ErrInvalidMatches   = errors.New("matches per team must be at least 1")
	ErrRosterLocked     = errors.New("teams cannot change once phase 1 has started")
	ErrPhase1NotStarted = errors.New("phase 1 has not started")
	ErrPhase2NotStarted = errors.New("phase 2 has not started")
	ErrPhase2Started    = errors.New("phase 2 has already started")
	ErrUnknownTree      = errors.New("unknown bracket")
	ErrNodeNotFound     = errors.New("match not found in bracket")
	ErrInvalidTeamID    = errors.New("invalid team id")
)

type Phase string

const (
	PhaseSetup Phase = "setup"
	Phase1     Phase = "phase1"
	Phase2     Phase = "phase2"
)

type TreeSelector string

const (
	WinnersTree     TreeSelector = "winners"
	ConsolationTree TreeSelector = "consolation"
)

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Brackets struct {
	Winners     *bracket.Node `json:"winners,omitempty"`
	Consolation *bracket.Node `json:"consolation,omitempty"`
}

// State is the whole tournament as it is saved and restored. Phase 1
// rounds refer to teams by name, phase 2 groups and brackets by id.
type State struct {
	Name           string           `json:"name"`
	Matches        int              `json:"matches"`
	Teams          []Team           `json:"teams"`
	Rounds         []schedule.Round `json:"rounds"`
	Phase2Groups   *Groups          `json:"phase2Groups,omitempty"`
	Phase2Brackets *Brackets        `json:"phase2Brackets,omitempty"`
}

func New() *State {
	return &State{
		Matches: 1,
		Teams:   []Team{},
		Rounds:  []schedule.Round{},
	}
}

func (s *State) Phase() Phase {
	switch {
	case s.Phase2Brackets != nil:
		return Phase2
	case len(s.Rounds) > 0:
		return Phase1
	default:
		return PhaseSetup
	}
}

// HasData reports whether there is anything worth saving.
func (s *State) HasData() bool {
	return len(s.Teams) > 0 || s.Name != ""
}

func (s *State) TeamNames() map[int]string {
	names := make(map[int]string, len(s.Teams))
	for _, t := range s.Teams {
		names[t.ID] = t.Name
	}
	return names
}

func (s *State) team(id int) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Bracket returns the phase 2 tree for the selector. It is nil when the
// group it was built for is empty.
func (s *State) Bracket(tree TreeSelector) (*bracket.Node, error) {
	if s.Phase2Brackets == nil {
		return nil, ErrPhase2NotStarted
	}
	switch tree {
	case WinnersTree:
		return s.Phase2Brackets.Winners, nil
	case ConsolationTree:
		return s.Phase2Brackets.Consolation, nil
	default:
		return nil, ErrUnknownTree
	}
}

// SetSettings updates the event name and the number of matches each team
// plays in phase 1. The match count is fixed once phase 1 has started.
func (s *State) SetSettings(name string, matches int) error {
	if matches < 1 {
		return ErrInvalidMatches
	}
	if matches != s.Matches && s.Phase() != PhaseSetup {
		return ErrRosterLocked
	}
	s.Name = strings.TrimSpace(name)
	s.Matches = matches
	return nil
}
