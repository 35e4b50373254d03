// Package share publishes small content blobs (avatars) under stable URIs.
// The store is shared by every session, so publication must be safe without
// any session lock held: publishing the same key twice keeps the first blob.
package share

import (
	"net/url"
	"sync"
)

type Store struct {
	baseURL string

	locker sync.RWMutex
	blobs  map[string][]byte
}

func NewStore(baseURL string) *Store {
	return &Store{
		baseURL: baseURL,
		blobs:   make(map[string][]byte),
	}
}

func (s *Store) ContainsUri(key string) bool {
	s.locker.RLock()
	defer s.locker.RUnlock()

	_, ok := s.blobs[key]
	return ok
}

// CreateUri publishes data under key and returns its URI. At most one
// publication per key wins; later calls return the URI of the first.
func (s *Store) CreateUri(key string, data []byte) string {
	s.locker.Lock()
	if _, ok := s.blobs[key]; !ok {
		s.blobs[key] = data
	}
	s.locker.Unlock()

	return s.MakeUri(key)
}

// MakeUri returns the URI a published key is addressed by.
func (s *Store) MakeUri(key string) string {
	return s.baseURL + "/share/" + url.PathEscape(key)
}

// Get returns the published blob, for the HTTP handler serving /share/.
func (s *Store) Get(key string) ([]byte, bool) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	data, ok := s.blobs[key]
	return data, ok
}
