package tournament

import (
	"encoding/json"
	"fmt"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
	"github.com/AdamBeresnev/cochonnet/internal/schedule"
)

func Marshal(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a saved tournament. Nothing is returned unless the
// whole state is usable: team ids must be unique and positive and both
// brackets must be well formed.
func Unmarshal(data []byte) (*State, error) {
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	if s.Teams == nil {
		s.Teams = []Team{}
	}
	if s.Rounds == nil {
		s.Rounds = []schedule.Round{}
	}

	seen := make(map[int]bool, len(s.Teams))
	for _, t := range s.Teams {
		if t.ID < 1 || seen[t.ID] {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTeamID, t.ID)
		}
		seen[t.ID] = true
	}

	if s.Phase2Brackets != nil {
		if err := bracket.Validate(s.Phase2Brackets.Winners); err != nil {
			return nil, fmt.Errorf("invalid winners bracket: %w", err)
		}
		if err := bracket.Validate(s.Phase2Brackets.Consolation); err != nil {
			return nil, fmt.Errorf("invalid consolation bracket: %w", err)
		}
	}

	return s, nil
}
