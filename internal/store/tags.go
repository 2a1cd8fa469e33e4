package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	apperrors "github.com/hatkhataapp/hatkhata-server/internal/errors"
	"github.com/hatkhataapp/hatkhata-server/internal/id"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
)

// tagsRecord is the persisted snapshot shape for the tag collection.
type tagsRecord struct {
	Tags []domain.Tag `json:"tags"`
}

// TagStore holds the tag collection in memory and persists whole-collection
// snapshots through the Durable backend. All reads return copies; callers
// never see internal state.
type TagStore struct {
	mu      sync.RWMutex
	tags    []domain.Tag
	durable Durable
	events  EventEmitter
}

// NewTagStore rehydrates the tag collection from the backend. A missing
// record means first launch: the store seeds the default tag set and
// persists it immediately so every later session sees the same IDs.
func NewTagStore(durable Durable, events EventEmitter) (*TagStore, error) {
	s := &TagStore{
		durable: durable,
		events:  events,
	}

	var rec tagsRecord
	err := durable.Load(RecordTags, &rec)
	switch {
	case err == nil:
		s.tags = rec.Tags
	case apperrors.Is(err, ErrRecordNotFound):
		s.tags = domain.DefaultTags()
		s.save()
	default:
		return nil, fmt.Errorf("failed to load tags record: %w", err)
	}

	return s, nil
}

// save snapshots the tag collection. Callers must hold the mutex (or, during
// construction, exclusive ownership).
func (s *TagStore) save() {
	s.durable.Save(RecordTags, tagsRecord{Tags: s.tags})
}

// Tags returns a copy of all tags in stored order.
func (s *TagStore) Tags() []domain.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tags)
}

// GetTagByID returns the tag with the given ID.
func (s *TagStore) GetTagByID(tagID string) (domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tags {
		if t.ID == tagID {
			return t, nil
		}
	}
	return domain.Tag{}, apperrors.NotFoundf("tag %s not found", tagID)
}

// IsDuplicateName reports whether a tag with the given name already exists,
// compared case-insensitively. excludeID skips one tag, so renames can keep
// their own name.
func (s *TagStore) IsDuplicateName(name, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duplicateNameLocked(name, excludeID)
}

func (s *TagStore) duplicateNameLocked(name, excludeID string) bool {
	for _, t := range s.tags {
		if t.ID != excludeID && t.NameEquals(name) {
			return true
		}
	}
	return false
}

// AddTag appends a new tag and returns its generated ID.
// Names must be unique case-insensitively.
func (s *TagStore) AddTag(name, color string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duplicateNameLocked(name, "") {
		return "", apperrors.AlreadyExistsf("tag %q already exists", name)
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return "", apperrors.Internalf("failed to generate tag ID: %v", err)
	}

	tag := domain.Tag{ID: tagID, Name: name, Color: color}
	s.tags = append(s.tags, tag)
	s.save()
	s.events.Emit(sse.NewTagCreatedEvent(tag))

	return tagID, nil
}

// UpdateTag applies a partial update to the tag with the given ID.
// An unknown ID is a no-op. Renaming onto another tag's name fails.
func (s *TagStore) UpdateTag(tagID string, patch domain.TagPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.tags, func(t domain.Tag) bool { return t.ID == tagID })
	if i < 0 {
		return nil
	}

	if patch.Name != nil && s.duplicateNameLocked(*patch.Name, tagID) {
		return apperrors.AlreadyExistsf("tag %q already exists", *patch.Name)
	}

	s.tags[i].Apply(patch)
	s.save()
	s.events.Emit(sse.NewTagUpdatedEvent(s.tags[i]))

	return nil
}

// DeleteTag removes the tag with the given ID. Lists and items keep their
// tag references; consumers resolve dangling IDs to "untagged" at read
// time, so no cascade happens here.
func (s *TagStore) DeleteTag(tagID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.tags, func(t domain.Tag) bool { return t.ID == tagID })
	if i < 0 {
		return
	}

	s.tags = slices.Delete(s.tags, i, i+1)
	s.save()
	s.events.Emit(sse.NewTagDeletedEvent(tagID, time.Now()))
}

// TagName returns the display name for a tag ID, or the empty string when
// the tag no longer exists. Satisfies domain.TagNameResolver.
func (s *TagStore) TagName(tagID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tags {
		if t.ID == tagID {
			return t.Name
		}
	}
	return ""
}
