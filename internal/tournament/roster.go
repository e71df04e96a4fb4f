package tournament

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AdamBeresnev/cochonnet/internal/utils"
	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// AddTeam registers a team under the smallest id not in use. Names are
// trimmed and must be unique.
func (s *State) AddTeam(name string) (Team, error) {
	if s.Phase() != PhaseSetup {
		return Team{}, ErrRosterLocked
	}

	trimmed := utils.StringOrNil(name)
	if trimmed == nil {
		return Team{}, ErrEmptyName
	}
	for _, t := range s.Teams {
		if t.Name == *trimmed {
			return Team{}, fmt.Errorf("%w: %s", ErrDuplicateName, *trimmed)
		}
	}

	team := Team{ID: s.nextTeamID(), Name: *trimmed}
	s.Teams = append(s.Teams, team)
	return team, nil
}

func (s *State) nextTeamID() int {
	used := make(map[int]bool, len(s.Teams))
	for _, t := range s.Teams {
		used[t.ID] = true
	}
	id := 1
	for used[id] {
		id++
	}
	return id
}

func (s *State) RemoveTeam(id int) error {
	if s.Phase() != PhaseSetup {
		return ErrRosterLocked
	}
	for i, t := range s.Teams {
		if t.ID == id {
			s.Teams = append(s.Teams[:i], s.Teams[i+1:]...)
			return nil
		}
	}
	return ErrTeamNotFound
}

const quotes = `"“”`

// ImportTeams adds every team named on a space separated line. Names with
// spaces are written in double quotes, e.g. `Alpha "Les Boulistes" Gamma`.
// Names already registered are skipped.
func (s *State) ImportTeams(line string) ([]Team, error) {
	if s.Phase() != PhaseSetup {
		return nil, ErrRosterLocked
	}

	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to create splitter: %w", err)
	}
	parts, err := spaceSplitter.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split team list: %w", err)
	}

	added := []Team{}
	for _, part := range parts {
		name := strings.Trim(strings.TrimSpace(part), quotes)
		if strings.TrimSpace(name) == "" {
			continue
		}
		team, err := s.AddTeam(name)
		if err != nil {
			if errors.Is(err, ErrDuplicateName) {
				continue
			}
			return added, err
		}
		added = append(added, team)
	}
	return added, nil
}

// FindTeam looks a team up by name. An exact match, ignoring case, wins;
// otherwise the query is fuzzy matched and the closest name is returned
// unless several names are equally close.
func (s *State) FindTeam(query string) (Team, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Team{}, ErrTeamNotFound
	}

	names := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		if strings.EqualFold(t.Name, query) {
			return t, nil
		}
		names[i] = t.Name
	}

	matches := fuzzy.RankFindFold(query, names)
	if len(matches) == 0 {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, query)
	}
	sort.Sort(matches)
	if len(matches) > 1 && matches[0].Distance == matches[1].Distance {
		return Team{}, fmt.Errorf("%w: %s", ErrAmbiguousTeam, query)
	}
	return s.Teams[matches[0].OriginalIndex], nil
}
