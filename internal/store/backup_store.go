package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const BackupPrefix = "cochonnet-backup-"

// DefaultMaxBackups is how many backups are kept when the store is not
// told otherwise.
const DefaultMaxBackups = 3

type Backup struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Size      int       `db:"size" json:"size"`
	Data      []byte    `db:"data" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// BackupName is the name of a backup taken at t, e.g.
// cochonnet-backup-2024-06-01-14-30-05.
func BackupName(t time.Time) string {
	return BackupPrefix + t.Format("2006-01-02-15-04-05")
}

type BackupStore struct {
	db         *sqlx.DB
	maxBackups int
	now        func() time.Time
}

const (
	insertBackupQuery = `
		INSERT INTO backups (id, name, size, data, created_at)
		VALUES (:id, :name, :size, :data, :created_at)
	`
	pruneBackupsQuery = `
		DELETE FROM backups WHERE id NOT IN (
			SELECT id FROM backups ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`
	listBackupsQuery = `
		SELECT id, name, size, created_at FROM backups
		ORDER BY created_at DESC, rowid DESC
	`
	getBackupQuery        = "SELECT * FROM backups WHERE id = ?"
	mostRecentBackupQuery = "SELECT * FROM backups ORDER BY created_at DESC, rowid DESC LIMIT 1"
	deleteBackupQuery     = "DELETE FROM backups WHERE id = ?"
)

func NewBackupStore(db *sqlx.DB, maxBackups int) *BackupStore {
	if maxBackups < 1 {
		maxBackups = DefaultMaxBackups
	}
	return &BackupStore{db: db, maxBackups: maxBackups, now: time.Now}
}

// SaveBackup stores data as a new backup and drops the oldest backups
// beyond the retention limit.
func (s *BackupStore) SaveBackup(ctx context.Context, data []byte) (*Backup, error) {
	now := s.now()
	backup := &Backup{
		ID:        uuid.New(),
		Name:      BackupName(now),
		Size:      len(data),
		Data:      data,
		CreatedAt: now.UTC(),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertBackupQuery, backup); err != nil {
		return nil, fmt.Errorf("failed to insert backup: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pruneBackupsQuery, s.maxBackups); err != nil {
		return nil, fmt.Errorf("failed to prune backups: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return backup, nil
}

// ListBackups returns the backups newest first, without their data.
func (s *BackupStore) ListBackups(ctx context.Context) ([]Backup, error) {
	backups := []Backup{}
	err := s.db.SelectContext(ctx, &backups, listBackupsQuery)
	return backups, err
}

func (s *BackupStore) LoadBackup(ctx context.Context, id uuid.UUID) (*Backup, error) {
	var backup Backup
	if err := s.db.GetContext(ctx, &backup, getBackupQuery, id); err != nil {
		return nil, err
	}
	return &backup, nil
}

// MostRecentBackup returns sql.ErrNoRows when there is no backup.
func (s *BackupStore) MostRecentBackup(ctx context.Context) (*Backup, error) {
	var backup Backup
	if err := s.db.GetContext(ctx, &backup, mostRecentBackupQuery); err != nil {
		return nil, err
	}
	return &backup, nil
}

func (s *BackupStore) DeleteBackup(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, deleteBackupQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
