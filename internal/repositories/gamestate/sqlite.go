package gamestate

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

const upsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQLiteRepository stores documents in a local key-value table
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens (and creates if needed) the store at path
func OpenSQLite(ctx context.Context, path string, clk clock.Clock) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}
	if clk == nil {
		clk = clock.New()
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return &SQLiteRepository{db: db, clock: clk}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Load implements Repository
func (r *SQLiteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := validateLoad(input); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, Key(input.DeviceID)).Scan(&data)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("no game state for device %s", input.DeviceID)
		}
		return nil, errors.Wrap(err, "failed to read game state")
	}

	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Document: doc}, nil
}

// Save implements Repository
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := encode(input.Document)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, upsert, Key(input.DeviceID), data, r.clock.Now().UTC().UnixMilli()); err != nil {
		return nil, errors.Wrap(err, "failed to write game state")
	}

	return &SaveOutput{}, nil
}

// UpdatedAt returns when a device's document was last written
func (r *SQLiteRepository) UpdatedAt(ctx context.Context, deviceID string) (time.Time, error) {
	var millis int64
	err := r.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, Key(deviceID)).Scan(&millis)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return time.Time{}, errors.NotFoundf("no game state for device %s", deviceID)
		}
		return time.Time{}, errors.Wrap(err, "failed to read game state")
	}
	return time.UnixMilli(millis).UTC(), nil
}

// PutRaw stores bytes for a device without encoding them
func (r *SQLiteRepository) PutRaw(ctx context.Context, deviceID string, data []byte) error {
	if _, err := r.db.ExecContext(ctx, upsert, Key(deviceID), data, r.clock.Now().UTC().UnixMilli()); err != nil {
		return errors.Wrap(err, "failed to write raw game state")
	}
	return nil
}
