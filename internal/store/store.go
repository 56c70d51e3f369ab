// Package store persists board snapshots.
package store

import (
	"context"
	"sync"

	"github.com/gmllt/resboard/internal/board"
)

// Store loads and saves the whole board.
type Store interface {
	Load(ctx context.Context) (*board.Board, error)
	Save(ctx context.Context, b *board.Board) error
}

// Memory keeps the last saved snapshot in process memory.
type Memory struct {
	mu   sync.Mutex
	snap *board.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*board.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return board.New(), nil
	}
	return board.FromSnapshot(*m.snap), nil
}

func (m *Memory) Save(ctx context.Context, b *board.Board) error {
	s := b.Snapshot()
	m.mu.Lock()
	m.snap = &s
	m.mu.Unlock()
	return nil
}
