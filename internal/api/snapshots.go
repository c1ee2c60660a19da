package api

import (
	"sync"

	"github.com/annel0/voxel-world/internal/game"
)

// SnapshotStore - последний снимок симуляции. Горутина симуляции публикует,
// HTTP-обработчики читают.
type SnapshotStore struct {
	mu     sync.RWMutex
	latest game.Snapshot
	ok     bool
}

// NewSnapshotStore создаёт пустое хранилище
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish заменяет снимок
func (s *SnapshotStore) Publish(snap game.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.ok = true
	s.mu.Unlock()
}

// Latest возвращает последний снимок; false, если публикаций ещё не было
func (s *SnapshotStore) Latest() (game.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ok
}
