// Package commentstore provides the comment.Store backends: MongoDB (the
// default, a managed document database), PostgreSQL and an in-process memory
// store, plus a lazily connected handle shared by every request.
package commentstore

import (
	"context"
	"sort"
	"sync"

	"portfolio/internal/comments"

	"github.com/google/uuid"
)

// Memory keeps comments in process memory. It is meant for development and tests.
type Memory struct {
	mu    sync.RWMutex
	items []comments.Comment
}

func NewMemory() *Memory {
	return &Memory{items: make([]comments.Comment, 0, 16)}
}

// List returns comments newest first; equal timestamps list the later insert first.
func (m *Memory) List(ctx context.Context) ([]comments.Comment, error) {
	m.mu.RLock()
	out := make([]comments.Comment, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *Memory) Insert(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	if err := ctx.Err(); err != nil {
		return comments.Comment{}, err
	}
	c.ID = uuid.NewString()

	m.mu.Lock()
	m.items = append(m.items, c)
	m.mu.Unlock()
	return c, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close(ctx context.Context) error { return nil }
