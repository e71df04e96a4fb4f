package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/AdamBeresnev/cochonnet/internal/bracket"
	"github.com/AdamBeresnev/cochonnet/internal/diagram"
	"github.com/AdamBeresnev/cochonnet/internal/ranking"
	"github.com/AdamBeresnev/cochonnet/internal/store"
	"github.com/AdamBeresnev/cochonnet/internal/tournament"
	"github.com/google/uuid"
)

// TournamentService holds the live tournament. Every operation runs under
// one lock, so the bracket trees are never touched by two requests at once.
type TournamentService struct {
	mu    sync.Mutex
	state *tournament.State
	store *store.BackupStore
	rng   *rand.Rand

	// called after a change worth saving right away
	onCriticalChange func()
}

func NewTournamentService(store *store.BackupStore, rng *rand.Rand) *TournamentService {
	return &TournamentService{
		state:            tournament.New(),
		store:            store,
		rng:              rng,
		onCriticalChange: func() {},
	}
}

// OnCriticalChange registers fn to be called after phase changes and
// bracket results. It is called without the lock held.
func (s *TournamentService) OnCriticalChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCriticalChange = fn
}

func (s *TournamentService) critical() {
	s.mu.Lock()
	fn := s.onCriticalChange
	s.mu.Unlock()
	fn()
}

type Overview struct {
	*tournament.State
	Phase    tournament.Phase `json:"phase"`
	Progress []float64        `json:"progress"`
}

// Overview returns a copy of the whole tournament.
func (s *TournamentService) Overview() (*Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied, err := s.copyState()
	if err != nil {
		return nil, err
	}
	return &Overview{State: copied, Phase: copied.Phase(), Progress: copied.Progress()}, nil
}

func (s *TournamentService) copyState() (*tournament.State, error) {
	data, err := tournament.Marshal(s.state)
	if err != nil {
		return nil, err
	}
	return tournament.Unmarshal(data)
}

// Snapshot encodes the tournament as it is saved in a backup.
func (s *TournamentService) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tournament.Marshal(s.state)
}

func (s *TournamentService) Phase() tournament.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase()
}

func (s *TournamentService) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HasData()
}

func (s *TournamentService) UpdateSettings(name string, matches int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetSettings(name, matches)
}

func (s *TournamentService) AddTeam(name string) (tournament.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, err := s.state.AddTeam(name)
	if err != nil {
		return team, err
	}
	slog.Info("team added", "id", team.ID, "name", team.Name)
	return team, nil
}

func (s *TournamentService) ImportTeams(line string) ([]tournament.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.state.ImportTeams(line)
	if err != nil {
		return teams, err
	}
	slog.Info("teams imported", "count", len(teams))
	return teams, nil
}

func (s *TournamentService) RemoveTeam(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.RemoveTeam(id); err != nil {
		return err
	}
	slog.Info("team removed", "id", id)
	return nil
}

func (s *TournamentService) FindTeam(query string) (tournament.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FindTeam(query)
}

func (s *TournamentService) StartPhase1() error {
	s.mu.Lock()
	err := s.state.StartPhase1(s.rng)
	rounds := len(s.state.Rounds)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	slog.Info("phase 1 started", "rounds", rounds)
	s.critical()
	return nil
}

func (s *TournamentService) SetMatchScore(roundIndex, matchIndex int, scoreA, scoreB *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetMatchScore(roundIndex, matchIndex, scoreA, scoreB)
}

type RankedEntry struct {
	Rank int `json:"rank"`
	ranking.Entry
}

// Ranking returns the phase 1 standings with competition ranks, tied
// teams sharing a rank.
func (s *TournamentService) Ranking() []RankedEntry {
	s.mu.Lock()
	entries := s.state.Ranking()
	s.mu.Unlock()

	ranks := ranking.CompetitionRanks(entries)
	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{Rank: ranks[i], Entry: e}
	}
	return ranked
}

func (s *TournamentService) StartPhase2() error {
	s.mu.Lock()
	err := s.state.StartPhase2()
	var groups tournament.Groups
	if err == nil {
		groups = *s.state.Phase2Groups
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	slog.Info("phase 2 started", "winners", len(groups.Winners), "consolation", len(groups.Consolation))
	s.critical()
	return nil
}

func (s *TournamentService) SetWinner(tree tournament.TreeSelector, nodeID string, winnerIndex int) error {
	s.mu.Lock()
	err := s.state.SetPhase2Winner(tree, nodeID, winnerIndex)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	slog.Info("winner set", "tree", tree, "node", nodeID, "winnerIndex", winnerIndex)
	s.critical()
	return nil
}

// Bracket returns a copy of one phase 2 tree.
func (s *TournamentService) Bracket(tree tournament.TreeSelector) (*bracket.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.state.Bracket(tree)
	if err != nil {
		return nil, err
	}
	return bracket.Clone(root), nil
}

func (s *TournamentService) Diagram(tree tournament.TreeSelector) (diagram.Grid, error) {
	root, err := s.Bracket(tree)
	if err != nil {
		return diagram.Grid{}, err
	}
	return diagram.Layout(root), nil
}

func (s *TournamentService) Text(tree tournament.TreeSelector) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.state.Bracket(tree)
	if err != nil {
		return "", err
	}
	return bracket.Visualize(root, s.state.TeamNames()), nil
}

func (s *TournamentService) Results() (tournament.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Results()
}

func (s *TournamentService) SaveBackup(ctx context.Context) (*store.Backup, error) {
	data, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	backup, err := s.store.SaveBackup(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to save backup: %w", err)
	}
	slog.Info("backup saved", "name", backup.Name, "size", backup.Size)
	return backup, nil
}

func (s *TournamentService) ListBackups(ctx context.Context) ([]store.Backup, error) {
	return s.store.ListBackups(ctx)
}

func (s *TournamentService) DeleteBackup(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteBackup(ctx, id); err != nil {
		return err
	}
	slog.Info("backup deleted", "id", id)
	return nil
}

// RestoreBackup replaces the live tournament with a saved one. The live
// tournament is left alone if the backup cannot be read.
func (s *TournamentService) RestoreBackup(ctx context.Context, id uuid.UUID) error {
	backup, err := s.store.LoadBackup(ctx, id)
	if err != nil {
		return err
	}
	return s.restore(backup)
}

// RestoreLatest loads the most recent backup, if any. It returns false when
// there is nothing to restore.
func (s *TournamentService) RestoreLatest(ctx context.Context) (bool, error) {
	backup, err := s.store.MostRecentBackup(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get latest backup: %w", err)
	}
	if err := s.restore(backup); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TournamentService) restore(backup *store.Backup) error {
	state, err := tournament.Unmarshal(backup.Data)
	if err != nil {
		return fmt.Errorf("failed to restore backup %s: %w", backup.Name, err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	slog.Info("backup restored", "name", backup.Name)
	return nil
}
