package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-reading-cache/library"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"golang.org/x/sync/singleflight"
)

// DefaultPath is used when Config.Path is empty.
const DefaultPath = "bibliothek.db"

var errClosed = errors.New("store closed")

var workColumns = []string{"title", "author", "year", "description", "category", "is_public_domain", "updated_at"}

// Config configures a Store.
type Config struct {
	// Path of the SQLite database file. Parent directories are created on open.
	Path string

	// Logger receives open and migration lines. Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

// Store is the durable tier: works keyed by id and generated content keyed
// by cache key. The database is opened on first use; concurrent first callers
// share a single open and exactly one handle is kept for the process.
type Store struct {
	path   string
	logger logrus.FieldLogger
	now    func() time.Time

	group singleflight.Group
	opens atomic.Int32

	mu     sync.Mutex
	db     *bun.DB
	closed bool
}

// New returns a Store for cfg. Nothing is opened until the first operation.
func New(cfg Config) *Store {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SaveWork inserts or fully replaces the work with the same id.
func (s *Store) SaveWork(ctx context.Context, work library.Work) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	q := db.NewInsert().
		Model(newWorkRecord(work, s.now())).
		On("CONFLICT (id) DO UPDATE")
	for _, col := range workColumns {
		q = q.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
	}

	if _, err := q.Exec(ctx); err != nil {
		return storageError("save work", err)
	}
	return nil
}

// Works returns every stored work ordered by title.
func (s *Store) Works(ctx context.Context) ([]library.Work, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	var records []workRecord
	if err := db.NewSelect().Model(&records).OrderExpr("title ASC, id ASC").Scan(ctx); err != nil {
		return nil, storageError("list works", err)
	}

	works := make([]library.Work, 0, len(records))
	for _, r := range records {
		works = append(works, r.toWork())
	}
	return works, nil
}

// SaveContent JSON encodes value and stores it under key, replacing any
// previous value.
func (s *Store) SaveContent(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return storageError("encode content", err)
	}

	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	rec := &contentRecord{CacheKey: key, Payload: string(payload), UpdatedAt: s.now()}
	_, err = db.NewInsert().
		Model(rec).
		On("CONFLICT (cache_key) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return storageError("save content", err)
	}
	return nil
}

// GetContent decodes the value stored under key into dest.
// Returns ErrNotFound when nothing is stored under key.
func (s *Store) GetContent(ctx context.Context, key string, dest any) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	rec := new(contentRecord)
	err = db.NewSelect().Model(rec).Where("cache_key = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return storageError("get content", err)
	}

	if err := json.Unmarshal([]byte(rec.Payload), dest); err != nil {
		return storageError("decode content", err)
	}
	return nil
}

// ClearContent removes all generated content and keeps the works.
func (s *Store) ClearContent(ctx context.Context) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := db.NewDelete().Model((*contentRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return storageError("clear content", err)
	}
	return nil
}

// Clear removes all works and all generated content.
func (s *Store) Clear(ctx context.Context) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*contentRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*workRecord)(nil)).Where("1 = 1").Exec(ctx)
		return err
	})
	if err != nil {
		return storageError("clear", err)
	}
	return nil
}

// Close releases the database handle. Operations after Close fail with a
// StorageError.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// handle returns the shared database handle, opening it on first use.
// A failed open is not remembered so the next call tries again.
func (s *Store) handle(ctx context.Context) (*bun.DB, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, storageError("open", errClosed)
	}
	db := s.db
	s.mu.Unlock()

	if db != nil {
		return db, nil
	}

	v, err, _ := s.group.Do("open", func() (any, error) {
		s.mu.Lock()
		if s.db != nil {
			db := s.db
			s.mu.Unlock()
			return db, nil
		}
		s.mu.Unlock()

		db, err := s.open(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			_ = db.Close()
			return nil, storageError("open", errClosed)
		}
		s.db = db
		return db, nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("[STORE] open failed")
		return nil, err
	}
	return v.(*bun.DB), nil
}

func (s *Store) open(ctx context.Context) (*bun.DB, error) {
	s.opens.Add(1)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageError("open", err)
		}
	}

	sqldb, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, storageError("open", err)
	}
	// SQLite has a single writer.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, storageError("migrate", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":           s.path,
		"schema_version": SchemaVersion,
	}).Debug("[STORE] opened")
	return db, nil
}

// migrate creates both tables and stamps the schema version when the file
// is older than SchemaVersion.
func migrate(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var version int
		if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
			return err
		}
		if version >= SchemaVersion {
			return nil
		}

		for _, model := range []any{(*workRecord)(nil), (*contentRecord)(nil)} {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion))
		return err
	})
}
