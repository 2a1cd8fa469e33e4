package store

import (
	"fmt"
	"sync"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	apperrors "github.com/hatkhataapp/hatkhata-server/internal/errors"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
)

// userRecord is the persisted snapshot shape for the local user.
type userRecord struct {
	Profile     domain.UserProfile `json:"profile"`
	IsOnboarded bool               `json:"is_onboarded"`
}

// UserStore holds the single local user's profile and onboarding state.
// There are no accounts and no credentials; "signing out" just resets the
// profile while lists, tags and settings stay intact.
type UserStore struct {
	mu        sync.RWMutex
	profile   domain.UserProfile
	onboarded bool
	durable   Durable
	events    EventEmitter
}

// NewUserStore rehydrates the user record from the backend. A missing
// record means the onboarding flow has never completed.
func NewUserStore(durable Durable, events EventEmitter) (*UserStore, error) {
	s := &UserStore{
		durable: durable,
		events:  events,
	}

	var rec userRecord
	err := durable.Load(RecordUser, &rec)
	switch {
	case err == nil:
		s.profile = rec.Profile
		s.onboarded = rec.IsOnboarded
	case apperrors.Is(err, ErrRecordNotFound):
		// First launch, zero-value profile.
	default:
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}

	return s, nil
}

// Profile returns the current profile.
func (s *UserStore) Profile() domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// IsOnboarded reports whether onboarding has completed.
func (s *UserStore) IsOnboarded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarded
}

// SetProfile applies a partial update to the profile.
func (s *UserStore) SetProfile(patch domain.ProfilePatch) domain.UserProfile {
	s.mu.Lock()
	s.profile.Apply(patch)
	updated := s.profile
	onboarded := s.onboarded
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewUserUpdatedEvent(updated, onboarded))
	return updated
}

// CompleteOnboarding resets the profile to just the given name and marks
// onboarding done.
func (s *UserStore) CompleteOnboarding(name string) domain.UserProfile {
	s.mu.Lock()
	s.profile = domain.UserProfile{Name: name}
	s.onboarded = true
	updated := s.profile
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewUserUpdatedEvent(updated, true))
	return updated
}

// SignOut resets the profile and onboarding state. Lists, tags and
// settings are untouched.
func (s *UserStore) SignOut() {
	s.mu.Lock()
	s.profile = domain.UserProfile{}
	s.onboarded = false
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewUserUpdatedEvent(domain.UserProfile{}, false))
}

// save snapshots the user record. Callers must hold the mutex.
func (s *UserStore) save() {
	s.durable.Save(RecordUser, userRecord{
		Profile:     s.profile,
		IsOnboarded: s.onboarded,
	})
}
