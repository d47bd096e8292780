package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store provides read-write access to the recipes SQLite database.
// All access to the database file goes through a Store.
type Store struct {
	db  *sql.DB
	log *zap.Logger

	mu       sync.Mutex
	closed   bool
	watchers map[*Subscription]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migrations and live-view failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, "CulinaryCompanion", "recipes.sqlite")
}

// Open opens the database at path, creating it and its directory if
// needed, and applies pending schema migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn, err := dataSourceName(path, "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := newStore(db, opts...)
	if err := migrate(ctx, db, s.log); err != nil {
		db.Close()
		return nil, err
	}

	// A single connection serialises writers so concurrent background
	// writes never see SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return s, nil
}

// dataSourceName builds a file: URI for path with the given query. The path
// is escaped so that characters such as '?' and '#' stay part of the file name.
func dataSourceName(path, query string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: query,
	}
	return u.String(), nil
}

func newStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:       db,
		log:      zap.NewNop(),
		watchers: make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close cancels all live views and closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	subs := make([]*Subscription, 0, len(s.watchers))
	for sub := range s.watchers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
	return s.db.Close()
}

// InsertOrReplace inserts r and returns its id. A zero ID lets SQLite
// assign one; a non-zero ID replaces any existing row with that id.
func (s *Store) InsertOrReplace(ctx context.Context, r Recipe) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if r.ID == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO recipes (title, ingredients, instructions, category, imageUri)
			VALUES (?, ?, ?, ?, ?)
		`, r.Title, r.Ingredients, r.Instructions, r.Category, r.ImageURI)
	} else {
		res, err = s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO recipes (id, title, ingredients, instructions, category, imageUri)
			VALUES (?, ?, ?, ?, ?, ?)
		`, r.ID, r.Title, r.Ingredients, r.Instructions, r.Category, r.ImageURI)
	}
	if err != nil {
		return 0, storageErr("insert recipe", err)
	}

	id := r.ID
	if id == 0 {
		if id, err = res.LastInsertId(); err != nil {
			return 0, storageErr("insert recipe id", err)
		}
	}

	s.notify()
	return id, nil
}

// Update replaces every field except the id of the recipe matching r.ID.
// It returns ErrNotFound when no such recipe exists.
func (s *Store) Update(ctx context.Context, r Recipe) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, ingredients = ?, instructions = ?, category = ?, imageUri = ?
		WHERE id = ?
	`, r.Title, r.Ingredients, r.Instructions, r.Category, r.ImageURI, r.ID)
	if err != nil {
		return storageErr("update recipe", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update recipe rows", err)
	}
	if n == 0 {
		return fmt.Errorf("update recipe %d: %w", r.ID, ErrNotFound)
	}

	s.notify()
	return nil
}

// Delete removes the recipe matching r.ID. Deleting a missing recipe is a no-op.
func (s *Store) Delete(ctx context.Context, r Recipe) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, r.ID)
	if err != nil {
		return storageErr("delete recipe", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete recipe rows", err)
	}
	if n > 0 {
		s.notify()
	}
	return nil
}

// GetAll returns every recipe ordered by title.
func (s *Store) GetAll(ctx context.Context) ([]Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, ingredients, instructions, category, imageUri
		FROM recipes
		ORDER BY title ASC, id ASC
	`)
	if err != nil {
		return nil, storageErr("query recipes", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.Title, &r.Ingredients, &r.Instructions,
			&r.Category, &r.ImageURI); err != nil {
			return nil, storageErr("scan recipe", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate recipes", err)
	}
	return recipes, nil
}

// GetByID returns the recipe with the given id, or nil if there is none.
func (s *Store) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, ingredients, instructions, category, imageUri
		FROM recipes
		WHERE id = ?
	`, id)

	var r Recipe
	if err := row.Scan(&r.ID, &r.Title, &r.Ingredients, &r.Instructions,
		&r.Category, &r.ImageURI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("scan recipe", err)
	}
	return &r, nil
}
