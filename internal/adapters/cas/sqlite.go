package cas

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var _ ports.BuildInfoStore = (*SQLiteStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS build_info (
	task_name   TEXT PRIMARY KEY,
	input_hash  TEXT NOT NULL,
	output_hash TEXT NOT NULL,
	timestamp   INTEGER NOT NULL
)`

// SQLiteStore implements ports.BuildInfoStore in a single sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	// One writer avoids SQLITE_BUSY between scheduler workers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}

	return &SQLiteStore{db: db}, nil
}

// Get retrieves the build info for a given task name.
func (s *SQLiteStore) Get(taskName string) (*domain.BuildInfo, error) {
	row := s.db.QueryRow(
		`SELECT input_hash, output_hash, timestamp FROM build_info WHERE task_name = ?`,
		taskName,
	)

	info := domain.BuildInfo{TaskName: taskName}
	var ts int64
	if err := row.Scan(&info.InputHash, &info.OutputHash, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "task", taskName)
	}
	info.Timestamp = time.Unix(0, ts)

	return &info, nil
}

// Put stores the build info, replacing any previous record of the task.
func (s *SQLiteStore) Put(info domain.BuildInfo) error {
	_, err := s.db.Exec(
		`INSERT INTO build_info (task_name, input_hash, output_hash, timestamp)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(task_name) DO UPDATE SET
			input_hash = excluded.input_hash,
			output_hash = excluded.output_hash,
			timestamp = excluded.timestamp`,
		info.TaskName, info.InputHash, info.OutputHash, info.Timestamp.UnixNano(),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "task", info.TaskName)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
