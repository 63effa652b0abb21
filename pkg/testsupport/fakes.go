// Package testsupport provides counting fakes for the store and cache ports.
// Tests use the call counters to verify cache-aside behavior: a cache hit
// shows up as zero store reads, an invalidation as a cache delete.
package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-todo-service/todo"
	"github.com/goliatone/go-todo-service/todocache"
)

// FakeStore is an in-memory todo.Store that records per-method call counts.
type FakeStore struct {
	mu     sync.Mutex
	nextID int64
	order  []int64
	todos  map[int64]*todo.Todo
	calls  map[string]int

	// FailWith, when set, makes every operation return this error.
	failWith error
}

// NewFakeStore creates an empty fake store. Seed records receive ids in order.
func NewFakeStore(seed ...*todo.Todo) *FakeStore {
	s := &FakeStore{
		todos: make(map[int64]*todo.Todo),
		calls: make(map[string]int),
	}
	for _, record := range seed {
		s.nextID++
		clone := *record
		clone.ID = s.nextID
		if clone.CreatedAt.IsZero() {
			clone.CreatedAt = time.Now().UTC()
		}
		s.todos[clone.ID] = &clone
		s.order = append(s.order, clone.ID)
	}
	return s
}

// FailWith makes every subsequent operation fail with err. Pass nil to
// restore normal behavior.
func (s *FakeStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Calls returns how many times the named method ran.
func (s *FakeStore) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Reads returns the combined count of SelectAll and SelectByID calls.
func (s *FakeStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls["SelectAll"] + s.calls["SelectByID"]
}

func (s *FakeStore) Insert(_ context.Context, create todo.CreateTodo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Insert"]++
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.nextID++
	record := &todo.Todo{
		ID:        s.nextID,
		Title:     create.Title,
		CreatedAt: time.Now().UTC(),
	}
	s.todos[record.ID] = record
	s.order = append(s.order, record.ID)
	clone := *record
	return &clone, nil
}

func (s *FakeStore) SelectAll(_ context.Context) ([]*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["SelectAll"]++
	if s.failWith != nil {
		return nil, s.failWith
	}
	records := make([]*todo.Todo, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.todos[id]
		records = append(records, &clone)
	}
	return records, nil
}

func (s *FakeStore) SelectByID(_ context.Context, id int64) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["SelectByID"]++
	if s.failWith != nil {
		return nil, s.failWith
	}
	record, ok := s.todos[id]
	if !ok {
		return nil, todo.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *FakeStore) UpdateByID(_ context.Context, id int64, patch todo.UpdateTodo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UpdateByID"]++
	if s.failWith != nil {
		return nil, s.failWith
	}
	record, ok := s.todos[id]
	if !ok {
		return nil, todo.ErrNotFound
	}
	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Completed != nil {
		record.Completed = *patch.Completed
	}
	clone := *record
	return &clone, nil
}

func (s *FakeStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["DeleteByID"]++
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.todos[id]; !ok {
		return todo.ErrNotFound
	}
	delete(s.todos, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ todo.Store = (*FakeStore)(nil)

// FakeCache is an in-memory todocache.Cache without TTL expiry, with
// per-method call counters and injectable failures.
type FakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	calls   map[string]int

	getErr    error
	setErr    error
	deleteErr error
}

// NewFakeCache creates an empty fake cache.
func NewFakeCache() *FakeCache {
	return &FakeCache{
		entries: make(map[string][]byte),
		calls:   make(map[string]int),
	}
}

// FailGet / FailSet / FailDelete inject errors per operation.
func (c *FakeCache) FailGet(err error)    { c.mu.Lock(); defer c.mu.Unlock(); c.getErr = err }
func (c *FakeCache) FailSet(err error)    { c.mu.Lock(); defer c.mu.Unlock(); c.setErr = err }
func (c *FakeCache) FailDelete(err error) { c.mu.Lock(); defer c.mu.Unlock(); c.deleteErr = err }

// Calls returns how many times the named method ran.
func (c *FakeCache) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// Has reports whether a key is present.
func (c *FakeCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Put stores a payload directly, bypassing counters. Tests use it to plant
// malformed snapshots.
func (c *FakeCache) Put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
}

// Drop removes a key directly, bypassing counters. Tests use it to simulate
// TTL expiry.
func (c *FakeCache) Drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *FakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["Get"]++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *FakeCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["Set"]++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = data
	return nil
}

func (c *FakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["Delete"]++
	if c.deleteErr != nil {
		return c.deleteErr
	}
	delete(c.entries, key)
	return nil
}

func (c *FakeCache) Close() error { return nil }

var _ todocache.Cache = (*FakeCache)(nil)
