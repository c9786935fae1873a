package spydoweb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/blackkspydo/spydo-web/feed"
)

// Store wraps a SQLite database holding posts and their bodies.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the import command write while the server reads; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    published TEXT NOT NULL,
    category TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0,
    content TEXT NOT NULL
);
`)
	return err
}

// ListPosts returns every post, drafts included, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]feed.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, title, description, published, category, draft FROM posts ORDER BY published DESC, slug`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []feed.Post
	for rows.Next() {
		var p feed.Post
		var draft int
		if err := rows.Scan(&p.Slug, &p.Title, &p.Description, &p.Published, &p.Category, &draft); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		p.Draft = draft == 1
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a single post by slug, drafts included.
func (s *Store) GetPost(ctx context.Context, slug string) (feed.Post, error) {
	p := feed.Post{Slug: slug}
	var draft int
	err := s.db.QueryRowContext(ctx, `SELECT title, description, published, category, draft FROM posts WHERE slug = ?`, slug).
		Scan(&p.Title, &p.Description, &p.Published, &p.Category, &draft)
	if errors.Is(err, sql.ErrNoRows) {
		return feed.Post{}, ErrNotFound
	}
	if err != nil {
		return feed.Post{}, fmt.Errorf("get post %q: %w", slug, err)
	}
	p.Draft = draft == 1
	return p, nil
}

// GetPostContent returns the raw body of the post with the given slug.
func (s *Store) GetPostContent(ctx context.Context, slug string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM posts WHERE slug = ?`, slug).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get content %q: %w", slug, err)
	}
	return content, nil
}

// SavePost upserts a post and its body.
func (s *Store) SavePost(ctx context.Context, p feed.Post, content string) error {
	draft := 0
	if p.Draft {
		draft = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (slug, title, description, published, category, draft, content) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, p.Published, p.Category, draft, content)
	if err != nil {
		return fmt.Errorf("save post %q: %w", p.Slug, err)
	}
	return nil
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("delete post %q: %w", slug, err)
	}
	return nil
}
