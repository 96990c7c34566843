package storage

import (
	"context"
	"errors"
	"sync"

	appworklog "github.com/worklog/backend/internal/application/worklog"
)

// Ensure MemoryArtifactStore implements ArtifactStore
var _ appworklog.ArtifactStore = (*MemoryArtifactStore)(nil)

// MemoryArtifactStore keeps artifacts in process memory. Use this for
// development and tests until a real storage backend is configured; artifacts
// do not survive a restart.
type MemoryArtifactStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArtifactStore creates a new MemoryArtifactStore
func NewMemoryArtifactStore() *MemoryArtifactStore {
	return &MemoryArtifactStore{
		objects: make(map[string][]byte),
	}
}

// Upload stores an artifact under the given key and returns the key as the
// artifact reference
func (s *MemoryArtifactStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return key, nil
}

// Fetch retrieves an artifact by its reference
func (s *MemoryArtifactStore) Fetch(_ context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New("artifact reference is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[ref]
	if !ok {
		return nil, errors.New("artifact not found: " + ref)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Delete removes an artifact from storage
func (s *MemoryArtifactStore) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return errors.New("artifact reference is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, ref)
	return nil
}

// Len returns the number of stored artifacts
func (s *MemoryArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
