package tournament

import (
	"fmt"
	"math/rand/v2"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
	"github.com/AdamBeresnev/cochonnet/internal/ranking"
	"github.com/AdamBeresnev/cochonnet/internal/schedule"
)

func (s *State) teamNameList() []string {
	names := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		names[i] = t.Name
	}
	return names
}

// StartPhase1 draws the qualification schedule, one round per match each
// team plays. It can be redrawn until phase 2 starts, which drops any
// scores already entered.
func (s *State) StartPhase1(rng *rand.Rand) error {
	if s.Phase() == Phase2 {
		return ErrPhase2Started
	}
	rounds, err := schedule.GenerateRounds(s.teamNameList(), s.Matches, rng)
	if err != nil {
		return fmt.Errorf("failed to generate rounds: %w", err)
	}
	s.Rounds = rounds
	return nil
}

func (s *State) SetMatchScore(roundIndex, matchIndex int, scoreA, scoreB *int) error {
	switch s.Phase() {
	case PhaseSetup:
		return ErrPhase1NotStarted
	case Phase2:
		return ErrPhase2Started
	}
	return schedule.SetScore(s.Rounds, roundIndex, matchIndex, scoreA, scoreB)
}

// Progress returns the share of scored matches of each round.
func (s *State) Progress() []float64 {
	progress := make([]float64, len(s.Rounds))
	for i, r := range s.Rounds {
		progress[i] = r.Progress()
	}
	return progress
}

func (s *State) Ranking() []ranking.Entry {
	return ranking.Compute(s.teamNameList(), s.Rounds)
}

// StartPhase2 closes phase 1: the ranking is split into the winners and
// consolation groups and a bracket is built for each, seeded in ranking
// order.
func (s *State) StartPhase2() error {
	switch s.Phase() {
	case PhaseSetup:
		return ErrPhase1NotStarted
	case Phase2:
		return ErrPhase2Started
	}

	idByName := make(map[string]int, len(s.Teams))
	for _, t := range s.Teams {
		idByName[t.Name] = t.ID
	}
	entries := s.Ranking()
	ranked := make([]int, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, idByName[e.Team])
	}

	groups := SplitGroups(ranked)
	s.Phase2Groups = &groups
	s.Phase2Brackets = &Brackets{
		Winners:     bracket.GenerateTree(groups.Winners),
		Consolation: bracket.GenerateTree(groups.Consolation),
	}
	return nil
}

// SetPhase2Winner records the winner of one match of a phase 2 bracket.
// Picking a winner for a match whose two teams are not known yet is
// ignored.
func (s *State) SetPhase2Winner(tree TreeSelector, nodeID string, winnerIndex int) error {
	root, err := s.Bracket(tree)
	if err != nil {
		return err
	}
	if bracket.Find(root, nodeID) == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	bracket.SetWinner(root, nodeID, winnerIndex)
	return nil
}

type Placing struct {
	First  *Team `json:"first"`
	Second *Team `json:"second"`
	Third  *Team `json:"third"`
}

type Results struct {
	Winners      Placing `json:"winners"`
	Consolation  Placing `json:"consolation"`
	BothFinished bool    `json:"bothFinished"`
}

// Results reads the podiums of both brackets, nil where a place is not
// decided yet.
func (s *State) Results() (Results, error) {
	if s.Phase2Brackets == nil {
		return Results{}, ErrPhase2NotStarted
	}
	r := bracket.ExtractResults(s.Phase2Brackets.Winners, s.Phase2Brackets.Consolation)
	return Results{
		Winners:      s.placing(r.Winners),
		Consolation:  s.placing(r.Consolation),
		BothFinished: r.BothFinished,
	}, nil
}

func (s *State) placing(p bracket.Podium) Placing {
	lookup := func(id int) *Team {
		if t, ok := s.team(id); ok {
			return &t
		}
		return nil
	}
	return Placing{First: lookup(p.First), Second: lookup(p.Second), Third: lookup(p.Third)}
}
