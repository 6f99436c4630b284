// Package verification keeps short-lived phone verification codes. The Store
// interface exists so a multi-instance deployment can plug in a shared cache;
// the in-memory map is the single-instance default and the test
// implementation.
package verification

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// CodeTTL is how long a stored code stays valid.
const CodeTTL = 5 * time.Minute

// Store is a phone -> code mapping with expiry. Verify consumes the code on
// success: a second attempt with the same code must fail.
type Store interface {
	Set(phone, code string)
	Verify(phone, code string) bool
	Delete(phone string)
}

type entry struct {
	code   string
	expiry time.Time
}

// MemoryStore is the default single-process Store. Expired entries are swept
// opportunistically on Set.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore returns a MemoryStore with the standard 5-minute TTL.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]entry),
		ttl:   CodeTTL,
		now:   time.Now,
	}
}

// Set stores a code for phone, replacing any previous one.
func (s *MemoryStore) Set(phone, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.codes[phone] = entry{code: code, expiry: s.now().Add(s.ttl)}
}

// Verify checks code against the stored entry for phone. Expired entries are
// removed on sight; a successful match removes the entry so the code is
// single-use.
func (s *MemoryStore) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codes[phone]
	if !ok {
		return false
	}
	if s.now().After(stored.expiry) {
		delete(s.codes, phone)
		return false
	}
	if stored.code != code {
		return false
	}
	delete(s.codes, phone)
	return true
}

// Delete discards any stored code for phone.
func (s *MemoryStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, phone)
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for phone, e := range s.codes {
		if now.After(e.expiry) {
			delete(s.codes, phone)
		}
	}
}

// GenerateCode returns a random 6-digit verification code.
func GenerateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
