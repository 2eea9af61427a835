package secret

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store abstracts a credentials store for SMB volumes.
// Implementations should be safe to call from multiple goroutines.
type Store interface {
	Get(host, share string) (Entry, bool, error)
	Set(host, share string, e Entry) error
	Delete(host, share string) error
}

// Entry is one stored credential.
type Entry struct {
	Domain   string
	Username string
	Password string
}

// Empty reports whether no credential field is set.
func (e Entry) Empty() bool {
	return e.Domain == "" && e.Username == "" && e.Password == ""
}

// Open returns the OS keyring store when useKeyring is set and the keyring can
// be opened, and an in-memory store otherwise.
func Open(useKeyring bool) Store {
	if useKeyring {
		s, err := NewKeyringStore()
		if err == nil {
			return s
		}
		log.WithError(err).Debug("keyring unavailable, using in-memory credential store")
	}
	return NewMemoryStore()
}

// key is case-insensitive: SMB host and share names are.
func key(host, share string) string {
	return strings.ToLower(host) + "|" + strings.ToLower(share)
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore returns a Store that keeps credentials for the process lifetime.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (s *memoryStore) Get(host, share string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key(host, share)]
	return e, ok, nil
}

func (s *memoryStore) Set(host, share string, e Entry) error {
	s.mu.Lock()
	s.entries[key(host, share)] = e
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(host, share string) error {
	s.mu.Lock()
	delete(s.entries, key(host, share))
	s.mu.Unlock()
	return nil
}
