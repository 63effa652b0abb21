package storeinfra

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// Database drivers registered for Open.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-todo-service/todo"
)

// Open connects to the configured relational engine and wraps it in a bun.DB.
// Supported drivers: "sqlite3" and "postgres".
func Open(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", driver)
	}

	switch driver {
	case "sqlite3":
		// sqlite allows a single writer; funneling the pool through one
		// connection avoids SQLITE_BUSY under concurrent writes.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		sqldb.Close()
		return nil, errors.Errorf("unsupported database driver: %q", driver)
	}
}

// BunStore implements todo.Store on a relational database through bun.
type BunStore struct {
	db *bun.DB
}

// NewBunStore creates a store backed by the given database.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// Migrate creates the todos table when it does not exist yet.
func (s *BunStore) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*todo.Todo)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to create todos table")
	}
	return nil
}

// Insert creates a row and scans back the store-assigned fields.
func (s *BunStore) Insert(ctx context.Context, create todo.CreateTodo) (*todo.Todo, error) {
	record := &todo.Todo{Title: create.Title}
	if _, err := s.db.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to insert todo")
	}
	return record, nil
}

// SelectAll returns every row ordered by id.
func (s *BunStore) SelectAll(ctx context.Context) ([]*todo.Todo, error) {
	records := make([]*todo.Todo, 0)
	if err := s.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to select todos")
	}
	return records, nil
}

// SelectByID returns the row with the given id.
func (s *BunStore) SelectByID(ctx context.Context, id int64) (*todo.Todo, error) {
	record := new(todo.Todo)
	err := s.db.NewSelect().
		Model(record).
		Where("id = ?", id).
		Scan(ctx)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, todo.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select todo %d", id)
	}
	return record, nil
}

// UpdateByID applies the patch in a single statement and returns the new row.
func (s *BunStore) UpdateByID(ctx context.Context, id int64, patch todo.UpdateTodo) (*todo.Todo, error) {
	if patch.Title == nil && patch.Completed == nil {
		return s.SelectByID(ctx, id)
	}

	record := new(todo.Todo)
	q := s.db.NewUpdate().
		Model((*todo.Todo)(nil)).
		Where("id = ?", id).
		Returning("*")
	if patch.Title != nil {
		q = q.Set("title = ?", *patch.Title)
	}
	if patch.Completed != nil {
		q = q.Set("completed = ?", *patch.Completed)
	}

	res, err := q.Exec(ctx, record)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, todo.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update todo %d", id)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, todo.ErrNotFound
	}
	return record, nil
}

// DeleteByID removes the row, reporting ErrNotFound when nothing matched.
func (s *BunStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().
		Model((*todo.Todo)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to delete todo %d", id)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to delete todo %d", id)
	}
	if rows == 0 {
		return todo.ErrNotFound
	}
	return nil
}

var _ todo.Store = (*BunStore)(nil)
