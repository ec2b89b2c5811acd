// Copyright (c) 2024 Wiregram Authors

package keys

import (
	"strconv"
	"sync"

	"github.com/xelaj/errs"
)

// Store holds the public keys the client trusts and answers the server's
// fingerprint list with the first key it recognizes. Safe for concurrent
// use; lookups take the read lock only.
type Store struct {
	mu   sync.RWMutex
	keys []*PublicKey
}

func NewStore(keys ...*PublicKey) *Store {
	s := &Store{}
	s.Add(keys...)
	return s
}

func (s *Store) Add(keys ...*PublicKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, keys...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Match walks the server's fingerprints in order and returns the first
// trusted key among them. Order matters, the server lists its preference
// first.
func (s *Store) Match(fingerprints []int64) (*PublicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fp := range fingerprints {
		for _, key := range s.keys {
			if key.fingerprint == fp {
				return key, nil
			}
		}
	}

	var first int64
	if len(fingerprints) > 0 {
		first = fingerprints[0]
	}
	return nil, errs.NotFound("rsa key fingerprint", strconv.FormatInt(first, 10))
}

// Drop forgets every key, used when switching environments.
func (s *Store) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
}

// LoadFile appends every PEM-encoded key found in the file.
func (s *Store) LoadFile(path string) error {
	loaded, err := ReadFromFile(path)
	if err != nil {
		return err
	}

	s.Add(loaded...)
	return nil
}
