// Package uploads keeps uploaded files in memory between reruns so that a
// selector change does not require uploading the file again.
package uploads

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"edadash/internal/errors"
)

// File is one stored upload
type File struct {
	ID         string
	Name       string
	Data       []byte
	UploadedAt time.Time
	lastAccess time.Time
}

// Store holds uploads keyed by ID and drops them after ttl without access
type Store struct {
	mu    sync.RWMutex
	files map[string]*File
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		files: make(map[string]*File),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores a copy of data and returns the new upload's ID
func (s *Store) Put(name string, data []byte) *File {
	now := s.now()
	file := &File{
		ID:         uuid.New().String(),
		Name:       name,
		Data:       append([]byte(nil), data...),
		UploadedAt: now,
		lastAccess: now,
	}

	s.mu.Lock()
	s.files[file.ID] = file
	s.mu.Unlock()

	log.Printf("[Upload] Stored %s as %s (%d bytes)", name, file.ID, len(data))
	return file
}

// Get returns an upload and refreshes its expiry
func (s *Store) Get(id string) (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[id]
	if !ok {
		return nil, errors.NotFound("upload " + id)
	}
	if s.expired(file) {
		delete(s.files, id)
		return nil, errors.NotFound("upload " + id)
	}
	file.lastAccess = s.now()
	return file, nil
}

// Delete removes an upload
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.files, id)
	s.mu.Unlock()
}

// Len returns the number of stored uploads, expired ones included until the
// next sweep
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Sweep drops every expired upload and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, file := range s.files {
		if s.expired(file) {
			delete(s.files, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Upload] Swept %d expired upload(s)", removed)
	}
	return removed
}

// Run sweeps periodically until done is closed
func (s *Store) Run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(file *File) bool {
	return s.now().Sub(file.lastAccess) > s.ttl
}
