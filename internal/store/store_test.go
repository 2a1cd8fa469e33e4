package store_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	"github.com/hatkhataapp/hatkhata-server/internal/store"
)

func TestStore_New_RehydratesEverything(t *testing.T) {
	mem := store.NewMemory()

	first, err := store.New(mem, store.NewNoopEmitter(), nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	_, err = first.Lists.AddList("Friday Bazaar", "tag-fish", false, nil)
	require.NoError(t, err)
	first.User.CompleteOnboarding("Rahim")
	first.Settings.SetThemeMode(domain.ThemeDark)

	second, err := store.New(mem, store.NewNoopEmitter(), nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Len(t, second.Lists.Lists(), 1)
	assert.True(t, second.User.IsOnboarded())
	assert.Equal(t, domain.ThemeDark, second.Settings.Settings().ThemeMode)
	assert.Len(t, second.Tags.Tags(), len(domain.DefaultTags()))

	// The install ID is minted once and survives restarts.
	assert.NotEmpty(t, first.Instance.InstallID)
	assert.Equal(t, first.Instance.InstallID, second.Instance.InstallID)
}

func TestStore_New_FailsOnCorruptBackend(t *testing.T) {
	mem := store.NewMemory()
	mem.FailLoads = true

	_, err := store.New(mem, store.NewNoopEmitter(), nil, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestBadgerBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records")

	b, err := store.OpenBadger(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	b.Save("record:test", payload{Title: "Friday Bazaar", Count: 3})
	// Close drains the write-behind queue before releasing the database.
	require.NoError(t, b.Close())

	reopened, err := store.OpenBadger(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer reopened.Close()

	var got payload
	require.NoError(t, reopened.Load("record:test", &got))
	assert.Equal(t, "Friday Bazaar", got.Title)
	assert.Equal(t, 3, got.Count)

	assert.ErrorIs(t, reopened.Load("record:absent", &got), store.ErrRecordNotFound)
}

func TestBadgerBackend_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records")

	b, err := store.OpenBadger(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	for i := range 10 {
		b.Save("record:counter", map[string]int{"n": i})
	}
	require.NoError(t, b.Close())

	reopened, err := store.OpenBadger(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer reopened.Close()

	var got map[string]int
	require.NoError(t, reopened.Load("record:counter", &got))
	assert.Equal(t, 9, got["n"])
}
