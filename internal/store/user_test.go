package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	"github.com/hatkhataapp/hatkhata-server/internal/store"
)

func newUserStore(t *testing.T) (*store.UserStore, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s, err := store.NewUserStore(mem, store.NewNoopEmitter())
	require.NoError(t, err)
	return s, mem
}

func TestUserStore_FirstLaunch(t *testing.T) {
	s, _ := newUserStore(t)

	assert.False(t, s.IsOnboarded())
	assert.Equal(t, domain.UserProfile{}, s.Profile())
}

func TestUserStore_CompleteOnboarding(t *testing.T) {
	s, _ := newUserStore(t)

	profile := s.CompleteOnboarding("Rahim")

	assert.Equal(t, "Rahim", profile.Name)
	assert.True(t, s.IsOnboarded())
}

func TestUserStore_CompleteOnboarding_ResetsExistingProfile(t *testing.T) {
	s, _ := newUserStore(t)

	bio := "Loves fish markets"
	s.SetProfile(domain.ProfilePatch{Bio: &bio})

	profile := s.CompleteOnboarding("Karim")

	// Onboarding starts a fresh profile carrying only the name.
	assert.Equal(t, domain.UserProfile{Name: "Karim"}, profile)
}

func TestUserStore_SetProfile_PartialMerge(t *testing.T) {
	s, _ := newUserStore(t)
	s.CompleteOnboarding("Rahim")

	email := "rahim@example.com"
	updated := s.SetProfile(domain.ProfilePatch{Email: &email})

	assert.Equal(t, "Rahim", updated.Name)
	assert.Equal(t, "rahim@example.com", updated.Email)
}

func TestUserStore_SignOut(t *testing.T) {
	s, _ := newUserStore(t)
	s.CompleteOnboarding("Rahim")

	s.SignOut()

	assert.False(t, s.IsOnboarded())
	assert.Equal(t, domain.UserProfile{}, s.Profile())
}

func TestUserStore_Rehydration(t *testing.T) {
	mem := store.NewMemory()
	first, err := store.NewUserStore(mem, store.NewNoopEmitter())
	require.NoError(t, err)
	first.CompleteOnboarding("Rahim")

	second, err := store.NewUserStore(mem, store.NewNoopEmitter())
	require.NoError(t, err)

	assert.True(t, second.IsOnboarded())
	assert.Equal(t, "Rahim", second.Profile().Name)
}
