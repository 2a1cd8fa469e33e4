// Package store holds all application state in memory and persists it as
// whole-snapshot records through a pluggable Durable backend. Every store
// rehydrates once at construction; after that, reads never touch disk and
// writes complete in the background.
package store

import (
	"log/slog"
)

// Store aggregates the four state stores plus the server instance record.
type Store struct {
	Tags     *TagStore
	Lists    *ListStore
	User     *UserStore
	Settings *SettingsStore
	Instance Instance

	durable Durable
}

// New rehydrates every store from the backend. A corrupt or unreadable
// record fails construction: starting with silently empty state would look
// like data loss to the user.
func New(durable Durable, emitter EventEmitter, localizer Localizer, logger *slog.Logger) (*Store, error) {
	tags, err := NewTagStore(durable, emitter)
	if err != nil {
		return nil, err
	}

	lists, err := NewListStore(durable, emitter)
	if err != nil {
		return nil, err
	}

	user, err := NewUserStore(durable, emitter)
	if err != nil {
		return nil, err
	}

	settings, err := NewSettingsStore(durable, emitter, localizer, logger)
	if err != nil {
		return nil, err
	}

	instance, err := InitializeInstance(durable)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("stores rehydrated",
			slog.Int("tags", len(tags.Tags())),
			slog.Int("lists", len(lists.Lists())),
			slog.Bool("onboarded", user.IsOnboarded()),
			slog.String("install_id", instance.InstallID))
	}

	return &Store{
		Tags:     tags,
		Lists:    lists,
		User:     user,
		Settings: settings,
		Instance: instance,
		durable:  durable,
	}, nil
}
