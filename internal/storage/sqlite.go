// Package storage provides SQLite-based persistence for level progress and
// saved boards. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

// ErrBoardNotFound is returned when a saved board does not exist.
var ErrBoardNotFound = errors.New("storage: board not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Completion records a solved level.
type Completion struct {
	ID         int64
	Collection string
	Level      int
	Ticks      int
	Board      string // arrangement that solved the level
	CreatedAt  time.Time
}

// SavedBoard is a named board string.
type SavedBoard struct {
	ID        int64
	Name      string
	Board     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			level INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			board TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(collection, level, ticks);

		CREATE TABLE IF NOT EXISTS boards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			board TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCompletion records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.Collection == "" || c.Level < 1 {
		return 0, fmt.Errorf("storage: invalid completion %s/%d", c.Collection, c.Level)
	}
	result, err := s.db.Exec(
		"INSERT INTO completions (collection, level, ticks, board) VALUES (?, ?, ?, ?)",
		c.Collection, c.Level, c.Ticks, c.Board,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestCompletion returns the completion with the fewest ticks for a level.
// ok is false if the level has never been solved.
func (s *Store) BestCompletion(collection string, level int) (c Completion, ok bool, err error) {
	var createdAt any
	err = s.db.QueryRow(
		`SELECT id, collection, level, ticks, board, created_at
		 FROM completions
		 WHERE collection = ? AND level = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT 1`,
		collection, level,
	).Scan(&c.ID, &c.Collection, &c.Level, &c.Ticks, &c.Board, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Completion{}, false, nil
	}
	if err != nil {
		return Completion{}, false, fmt.Errorf("storage: cannot query best completion: %w", err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return c, true, nil
}

// Completions retrieves completions ordered by level, then ticks.
// An empty collection selects every collection. limit <= 0 means no limit.
func (s *Store) Completions(collection string, limit int) ([]Completion, error) {
	query := `SELECT id, collection, level, ticks, board, created_at
		 FROM completions
		 WHERE (? = '' OR collection = ?)
		 ORDER BY collection, level, ticks, id`
	args := []any{collection, collection}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Collection, &c.Level, &c.Ticks, &c.Board, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CompletedLevels returns the set of solved level numbers in a collection.
func (s *Store) CompletedLevels(collection string) (map[int]bool, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT level FROM completions WHERE collection = ?",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	done := make(map[int]bool)
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[level] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return done, nil
}

// ClearProgress deletes all completions for a collection.
// An empty collection clears everything.
func (s *Store) ClearProgress(collection string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE (? = '' OR collection = ?)", collection, collection)
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// CollectionStats contains aggregated progress for a collection.
type CollectionStats struct {
	Collection   string
	Completions  int
	LevelsSolved int
	FewestTicks  int
	LastPlayed   time.Time
}

// GetCollectionStats retrieves aggregated progress for one collection.
func (s *Store) GetCollectionStats(collection string) (*CollectionStats, error) {
	stats := &CollectionStats{Collection: collection}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(MIN(ticks), 0), MAX(created_at)
		 FROM completions WHERE collection = ?`,
		collection,
	).Scan(&stats.Completions, &stats.LevelsSolved, &stats.FewestTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get collection stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// GetAllCollectionStats retrieves progress for every collection played.
func (s *Store) GetAllCollectionStats() (map[string]*CollectionStats, error) {
	rows, err := s.db.Query(
		`SELECT collection, COUNT(*), COUNT(DISTINCT level), MIN(ticks), MAX(created_at)
		 FROM completions
		 GROUP BY collection`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all collection stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CollectionStats)
	for rows.Next() {
		var cs CollectionStats
		var lastPlayed any
		if err := rows.Scan(&cs.Collection, &cs.Completions, &cs.LevelsSolved, &cs.FewestTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTimestamp(lastPlayed)
		stats[cs.Collection] = &cs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveBoard stores a board under name, replacing any board with that name.
// The board string must be valid.
func (s *Store) SaveBoard(name, board string) error {
	if name == "" {
		return errors.New("storage: board name is required")
	}
	if err := core.Validate(board); err != nil {
		return fmt.Errorf("storage: cannot save board %s: %w", name, err)
	}
	_, err := s.db.Exec(
		`INSERT INTO boards (name, board) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET board = excluded.board, updated_at = CURRENT_TIMESTAMP`,
		name, board,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board %s: %w", name, err)
	}
	return nil
}

// LoadBoard retrieves a saved board by name.
func (s *Store) LoadBoard(name string) (SavedBoard, error) {
	var b SavedBoard
	var createdAt, updatedAt any
	err := s.db.QueryRow(
		"SELECT id, name, board, created_at, updated_at FROM boards WHERE name = ?",
		name,
	).Scan(&b.ID, &b.Name, &b.Board, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedBoard{}, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
	}
	if err != nil {
		return SavedBoard{}, fmt.Errorf("storage: cannot load board %s: %w", name, err)
	}
	b.CreatedAt = parseTimestamp(createdAt)
	b.UpdatedAt = parseTimestamp(updatedAt)
	return b, nil
}

// ListBoards returns all saved boards ordered by name.
func (s *Store) ListBoards() ([]SavedBoard, error) {
	rows, err := s.db.Query("SELECT id, name, board, created_at, updated_at FROM boards ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list boards: %w", err)
	}
	defer rows.Close()

	var out []SavedBoard
	for rows.Next() {
		var b SavedBoard
		var createdAt, updatedAt any
		if err := rows.Scan(&b.ID, &b.Name, &b.Board, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.CreatedAt = parseTimestamp(createdAt)
		b.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteBoard removes a saved board.
func (s *Store) DeleteBoard(name string) error {
	result, err := s.db.Exec("DELETE FROM boards WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete board %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete board %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, name)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
