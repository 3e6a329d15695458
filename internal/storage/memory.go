package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

// MemoryStore is an in-memory transaction store with the same behavior as
// the SQLite repository. It backs unit tests and local experiments where a
// database file is unwanted.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	items    []core.Transaction
	exported map[int64]bool

	// Now is the clock used for store-assigned timestamps; tests may
	// replace it.
	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		exported: make(map[int64]bool),
		Now:      time.Now,
	}
}

func (s *MemoryStore) Add(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = s.Now().UTC()
	s.items = append(s.items, t)
	return t, nil
}

func (s *MemoryStore) SumByCategory(_ context.Context, userID int64, kind core.Kind, w core.Window) (map[string]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[string]core.Money)
	for _, t := range s.items {
		if t.UserID != userID || t.Kind != kind || !w.Contains(t.CreatedAt) {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	return sums, nil
}

func (s *MemoryStore) Totals(_ context.Context, userID int64, w core.Window) (expense, income core.Money, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.items {
		if t.UserID != userID || !w.Contains(t.CreatedAt) {
			continue
		}
		switch t.Kind {
		case core.Expense:
			expense = expense.Add(t.Amount)
		case core.Income:
			income = income.Add(t.Amount)
		}
	}
	return expense, income, nil
}

func (s *MemoryStore) Recent(_ context.Context, userID int64, limit int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %d not found", id)
}

func (s *MemoryStore) ListUnexported(_ context.Context, limit int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.items {
		if !s.exported[t.ID] {
			out = append(out, t)
		}
		if limit >= 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkExported(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exported[id] = true
	return nil
}

func (s *MemoryStore) MarkExportError(_ context.Context, id int64) error {
	return nil
}
