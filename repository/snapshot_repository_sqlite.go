package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"lotus-engine/domain"
)

var snapshotSchema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		request    BLOB NOT NULL,
		result     BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots (kind, created_at)`,
}

type snapshotRow struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Request   []byte `db:"request"`
	Result    []byte `db:"result"`
	CreatedAt int64  `db:"created_at"`
}

// SQLiteSnapshotRepository keeps snapshots in a SQLite database.
type SQLiteSnapshotRepository struct {
	db *sqlx.DB
}

// OpenSQLiteSnapshotRepository opens (and creates if needed) the database at
// path. ":memory:" gives a private in-memory database.
func OpenSQLiteSnapshotRepository(path string) (*SQLiteSnapshotRepository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, stmt := range snapshotSchema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create snapshot schema: %w", err)
		}
	}
	return &SQLiteSnapshotRepository{db: db}, nil
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	row := snapshotRow{
		ID:        snapshot.ID,
		Kind:      string(snapshot.Kind),
		Request:   snapshot.Request,
		Result:    snapshot.Result,
		CreatedAt: snapshot.CreatedAt.UnixNano(),
	}
	query := `INSERT INTO snapshots (id, kind, request, result, created_at)
		VALUES (:id, :kind, :request, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	var row snapshotRow
	query := `SELECT id, kind, request, result, created_at FROM snapshots WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snapshot{}, ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return domain.Snapshot{
		ID:        row.ID,
		Kind:      domain.SnapshotKind(row.Kind),
		Request:   row.Request,
		Result:    row.Result,
		CreatedAt: time.Unix(0, row.CreatedAt).UTC(),
	}, nil
}

// CountByKind returns how many snapshots were stored for kind.
func (r *SQLiteSnapshotRepository) CountByKind(ctx context.Context, kind domain.SnapshotKind) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM snapshots WHERE kind = ?`, string(kind)); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return n, nil
}

func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}
