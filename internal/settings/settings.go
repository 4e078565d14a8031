// Package settings persists the boardagent per-user settings (currently one
// field, the selected device) in a small SQLite database.
package settings

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	envDBPath         = "BOARDAGENT_DB_PATH"
	defaultDirName    = ".boardagent"
	defaultFileName   = "settings.sqlite"
	selectedDeviceKey = "selected_device"
)

// Store is a lazily-opened settings database. The selected device is loaded
// once per process and cached; writes go through synchronously.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error

	mu       sync.Mutex
	selected string
}

// NewStore returns a store rooted at path. An empty path resolves to
// $BOARDAGENT_DB_PATH, falling back to ~/.boardagent/settings.sqlite.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Selected returns the persisted device identifier, or "" when nothing was
// stored yet. Open and read failures degrade to the empty default; the host
// treats that as "no selection" and re-prompts.
func (s *Store) Selected(ctx context.Context) (string, error) {
	if err := s.ensure(ctx); err != nil {
		log.Warn().Err(err).Msg("settings: open failed, defaulting to empty selection")
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, nil
}

// SetSelected overwrites the persisted device identifier. Unlike reads, write
// failures propagate.
func (s *Store) SetSelected(ctx context.Context, serial string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	query := `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`
	log.Debug().Msg(formatSQLForLog(query, selectedDeviceKey, serial))
	if _, err := s.db.ExecContext(ctx, query, selectedDeviceKey, serial); err != nil {
		return pkgerrors.Wrap(err, "settings: save selection failed")
	}
	s.mu.Lock()
	s.selected = serial
	s.mu.Unlock()
	return nil
}

// Close releases the database handle if one was opened.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ensure opens the database and loads the persisted selection exactly once.
func (s *Store) ensure(ctx context.Context) error {
	s.once.Do(func() {
		path := s.path
		if path == "" {
			resolved, err := resolveDatabasePath()
			if err != nil {
				s.openErr = err
				return
			}
			path = resolved
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			s.openErr = pkgerrors.Wrap(err, "settings: open sqlite database failed")
			return
		}
		if err := configureSQLite(db); err != nil {
			db.Close()
			s.openErr = err
			return
		}
		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`); err != nil {
			db.Close()
			s.openErr = pkgerrors.Wrap(err, "settings: init schema failed")
			return
		}
		s.db = db
		s.path = path

		var value string
		query := `SELECT value FROM settings WHERE key = ?`
		log.Debug().Msg(formatSQLForLog(query, selectedDeviceKey))
		err = db.QueryRowContext(ctx, query, selectedDeviceKey).Scan(&value)
		switch {
		case err == nil:
			s.selected = value
		case pkgerrors.Is(err, sql.ErrNoRows):
			// First run, nothing stored yet.
		default:
			log.Warn().Err(err).Msg("settings: read selection failed, defaulting to empty")
		}
	})
	return s.openErr
}

func resolveDatabasePath() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envDBPath)); custom != "" {
		if err := ensureDir(filepath.Dir(custom)); err != nil {
			return "", err
		}
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", pkgerrors.Wrap(err, "settings: locate user home failed")
	}
	dir := filepath.Join(home, defaultDirName)
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "settings: create dir %s failed", dir)
	}
	return nil
}

func configureSQLite(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return pkgerrors.Wrapf(err, "settings: execute %s failed", pragma)
		}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return nil
}
