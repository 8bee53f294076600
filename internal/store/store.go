// Package store persists the sites served by the development fixture server.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sitedeck/internal/logging"
	"sitedeck/internal/site"
)

// ErrNotFound is returned when no site has the requested ID.
var ErrNotFound = errors.New("site not found")

// Store is a SQLite-backed sites table.
type Store struct {
	db  *sql.DB
	log *logging.Logger
}

// Open opens (creating if needed) the database at path and applies
// migrations. A nil logger discards.
func Open(ctx context.Context, path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writes and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, log: log.WithComponent("store")}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all sites in insertion order.
func (s *Store) List(ctx context.Context) ([]site.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, href, edit_href, bucket_name
		FROM sites
		ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	items := []site.Item{}
	for rows.Next() {
		var it site.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Href, &it.EditHref, &it.BucketName); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return items, nil
}

// Create inserts a site with a fresh ID. An empty EditHref defaults to the
// site's edit route.
func (s *Store) Create(ctx context.Context, it site.Item) (site.Item, error) {
	it.ID = uuid.NewString()
	if it.EditHref == "" {
		it.EditHref = site.DefaultEditHref(it.ID)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (id, title, href, edit_href, bucket_name)
		VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Href, it.EditHref, it.BucketName,
	); err != nil {
		return site.Item{}, fmt.Errorf("create site: %w", err)
	}
	return it, nil
}

// Delete removes a site. It returns ErrNotFound when id is unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete site %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete site %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// demoSites is inserted by Seed into an empty table.
var demoSites = []site.Item{
	{Title: "Personal blog", Href: "https://blog.example.com", BucketName: "blog-example-com"},
	{Title: "Portfolio", Href: "https://portfolio.example.com", BucketName: "portfolio-example-com"},
	{Title: "Docs", Href: "https://docs.example.com", BucketName: "docs-example-com"},
}

// Seed inserts demo sites when the table is empty and returns how many
// rows it added.
func (s *Store) Seed(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sites`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sites: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, it := range demoSites {
		if _, err := s.Create(ctx, it); err != nil {
			return 0, err
		}
	}
	s.log.Info("seeded demo sites", "count", len(demoSites))
	return len(demoSites), nil
}
