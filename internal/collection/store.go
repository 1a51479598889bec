package collection

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shelfscan/internal/catalog"
	"shelfscan/internal/config"
)

// Item is one owned game in a user's collection.
type Item struct {
	ID      int64
	UserID  string
	GameID  int64
	Name    string
	Rank    int
	Year    int
	AddedAt time.Time
}

// Store manages collection persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the collection database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.CollectionDBPath())
}

// OpenPath opens the collection database at an explicit location and applies
// the schema when missing.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// IsOwned reports whether the user already owns the given catalog game.
func (s *Store) IsOwned(ctx context.Context, userID string, gameID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM collection_items WHERE user_id = ? AND game_id = ?",
		userID, gameID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query ownership: %w", err)
	}
	return count > 0, nil
}

// OwnedSet returns which of the given game ids the user owns. Ids absent
// from the result are not owned.
func (s *Store) OwnedSet(ctx context.Context, userID string, gameIDs []int64) (map[int64]bool, error) {
	owned := make(map[int64]bool, len(gameIDs))
	if len(gameIDs) == 0 {
		return owned, nil
	}

	placeholders := strings.Repeat("?,", len(gameIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(gameIDs)+1)
	args = append(args, userID)
	for _, id := range gameIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT game_id FROM collection_items WHERE user_id = ? AND game_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query owned set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owned id: %w", err)
		}
		owned[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned set: %w", err)
	}
	return owned, nil
}

// Add inserts the given catalog records into the user's collection and
// returns how many rows were actually inserted. Records already present
// are skipped by the (user_id, game_id) conflict key, so Add is safe to
// call concurrently with overlapping ids.
func (s *Store) Add(ctx context.Context, userID string, records []catalog.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, record := range records {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO collection_items (user_id, game_id, name, rank, year, added_at)
             VALUES (?, ?, ?, ?, ?, ?)
             ON CONFLICT (user_id, game_id) DO NOTHING`,
			userID, record.ID, record.Name, record.Rank, record.Year, timestamp,
		)
		if err != nil {
			return 0, fmt.Errorf("insert game %d: %w", record.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected for game %d: %w", record.ID, err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add tx: %w", err)
	}
	return inserted, nil
}

// List returns the user's collection ordered by name.
func (s *Store) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, game_id, name, rank, year, added_at
         FROM collection_items WHERE user_id = ? ORDER BY name COLLATE NOCASE`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			item     Item
			addedRaw string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.GameID, &item.Name, &item.Rank, &item.Year, &addedRaw); err != nil {
			return nil, fmt.Errorf("scan collection item: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, addedRaw); err == nil {
			item.AddedAt = parsed
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection: %w", err)
	}
	return items, nil
}

// Remove deletes one game from the user's collection. Returns false when
// the game was not present.
func (s *Store) Remove(ctx context.Context, userID string, gameID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM collection_items WHERE user_id = ? AND game_id = ?",
		userID, gameID,
	)
	if err != nil {
		return false, fmt.Errorf("delete game %d: %w", gameID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
