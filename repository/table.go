package repository

import (
	"slices"
	"sync"
)

// table is an id-keyed, insertion-ordered record map guarded by a RWMutex.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putLocked(id, v)
}

func (t *table[T]) putLocked(id string, v T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

// update applies fn to the stored record; ok is false when id is absent.
func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	fn(&v)
	t.rows[id] = v
	return v, true
}

// upsert merges fn into the record at id, creating it from init first when absent.
func (t *table[T]) upsert(id string, init func() T, fn func(*T)) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		v = init()
	}
	fn(&v)
	t.putLocked(id, v)
	return v
}

// remove deletes id and reports whether it was present.
func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(k string) bool { return k == id })
	return true
}

// filter returns matching records in insertion order; a nil pred matches all.
func (t *table[T]) filter(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
