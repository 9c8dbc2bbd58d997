package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrNoRecord is returned by a Backend when the profile has never been saved.
var ErrNoRecord = errors.New("progress: no record")

// Backend stores one blob per profile.
type Backend interface {
	Load(ctx context.Context, profile string) ([]byte, error)
	Save(ctx context.Context, profile string, blob []byte) error
	Delete(ctx context.Context, profile string) error
}

// Store keeps the in-memory progress of one profile and writes every
// mutation through to its backend.
type Store struct {
	backend Backend
	profile string
	logger  *log.Logger
	state   Progress
	found   bool
}

// NewStore creates a store for profile. It starts at Default until Load is called.
func NewStore(backend Backend, profile string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{
		backend: backend,
		profile: profile,
		logger:  logger,
		state:   Default(),
	}
}

// Profile returns the profile key.
func (s *Store) Profile() string { return s.profile }

// Load reads the profile's record. Read failures and missing records leave
// the defaults in place; the former are logged.
func (s *Store) Load(ctx context.Context) Progress {
	data, err := s.backend.Load(ctx, s.profile)
	s.found = err == nil
	switch {
	case errors.Is(err, ErrNoRecord):
		s.state = Default()
	case err != nil:
		s.logger.Warn("could not load progress, using defaults", "profile", s.profile, "error", err)
		s.state = Default()
	default:
		s.state = Decode(data)
	}
	return s.state.Clone()
}

// Found reports whether the last Load read a stored record.
func (s *Store) Found() bool { return s.found }

// Get returns a copy of the current progress.
func (s *Store) Get() Progress {
	return s.state.Clone()
}

// Update applies fn to the progress and saves the result.
func (s *Store) Update(ctx context.Context, fn func(p *Progress)) error {
	fn(&s.state)
	return s.Save(ctx)
}

// Save writes the current progress to the backend.
func (s *Store) Save(ctx context.Context) error {
	data, err := Encode(s.state)
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}
	if err := s.backend.Save(ctx, s.profile, data); err != nil {
		s.logger.Error("could not save progress", "profile", s.profile, "error", err)
		return fmt.Errorf("progress: save %s: %w", s.profile, err)
	}
	s.logger.Debug("progress saved", "profile", s.profile, "level", s.state.CurrentLevel)
	return nil
}

// Reset deletes the stored record and returns to defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.state = Default()
	if err := s.backend.Delete(ctx, s.profile); err != nil {
		return fmt.Errorf("progress: reset %s: %w", s.profile, err)
	}
	return nil
}

// MemoryBackend is a process-local Backend.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

// Load implements Backend.
func (m *MemoryBackend) Load(_ context.Context, profile string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[profile]
	if !ok {
		return nil, ErrNoRecord
	}
	return append([]byte(nil), data...), nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(_ context.Context, profile string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[profile] = append([]byte(nil), blob...)
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(_ context.Context, profile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, profile)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
