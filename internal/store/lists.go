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

// listsRecord is the persisted snapshot shape for the list collection.
type listsRecord struct {
	Lists []domain.BazaarList `json:"lists"`
}

// ListStore holds every bazaar list in memory and persists the whole
// collection as one snapshot after each mutation. Items live inside their
// list; there is no separate item record.
type ListStore struct {
	mu      sync.RWMutex
	lists   []domain.BazaarList
	durable Durable
	events  EventEmitter
}

// NewListStore rehydrates the list collection from the backend. A missing
// record means no lists exist yet.
func NewListStore(durable Durable, events EventEmitter) (*ListStore, error) {
	s := &ListStore{
		durable: durable,
		events:  events,
	}

	var rec listsRecord
	err := durable.Load(RecordLists, &rec)
	switch {
	case err == nil:
		s.lists = rec.Lists
		if s.lists == nil {
			s.lists = []domain.BazaarList{}
		}
	case apperrors.Is(err, ErrRecordNotFound):
		s.lists = []domain.BazaarList{}
	default:
		return nil, fmt.Errorf("failed to load lists record: %w", err)
	}

	return s, nil
}

// save snapshots the list collection. Callers must hold the mutex.
func (s *ListStore) save() {
	s.durable.Save(RecordLists, listsRecord{Lists: s.lists})
}

// Lists returns a deep copy of every list in stored order.
func (s *ListStore) Lists() []domain.BazaarList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLists(s.lists)
}

// GetListByID returns a deep copy of the list with the given ID.
func (s *ListStore) GetListByID(listID string) (domain.BazaarList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(listID)
	if i < 0 {
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}
	return cloneList(s.lists[i]), nil
}

// GetSortedLists returns every list arranged by the given sort mode, with
// pinned lists always first. The resolver supplies tag names for category
// sorting; it may be nil.
func (s *ListStore) GetSortedLists(mode domain.SortMode, tagName domain.TagNameResolver) []domain.BazaarList {
	s.mu.RLock()
	lists := cloneLists(s.lists)
	s.mu.RUnlock()
	return domain.SortLists(lists, mode, tagName)
}

// GetListsByTag returns lists whose TagID is in the given set. An empty set
// matches everything.
func (s *ListStore) GetListsByTag(tagIDs []string) []domain.BazaarList {
	s.mu.RLock()
	lists := cloneLists(s.lists)
	s.mu.RUnlock()
	return domain.FilterByTags(lists, tagIDs)
}

// SearchLists returns lists matching the query against title, item names
// and notes. A blank query matches everything.
func (s *ListStore) SearchLists(query string) []domain.BazaarList {
	s.mu.RLock()
	lists := cloneLists(s.lists)
	s.mu.RUnlock()
	return domain.SearchLists(lists, query)
}

// AddList creates a new list at the end of the collection and returns a
// copy of it. Supplied item drafts become items in draft order.
func (s *ListStore) AddList(title, tagID string, isUrgent bool, drafts []domain.ItemDraft) (domain.BazaarList, error) {
	listID, err := id.Generate(id.PrefixList)
	if err != nil {
		return domain.BazaarList{}, apperrors.Internalf("failed to generate list ID: %v", err)
	}

	now := time.Now()
	list := domain.BazaarList{
		ID:        listID,
		Title:     title,
		TagID:     tagID,
		IsUrgent:  isUrgent,
		Items:     []domain.BazaarItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, draft := range drafts {
		itemID, err := id.Generate(id.PrefixItem)
		if err != nil {
			return domain.BazaarList{}, apperrors.Internalf("failed to generate item ID: %v", err)
		}
		list.AppendItem(domain.BazaarItem{
			ID:       itemID,
			Name:     draft.Name,
			TagID:    draft.TagID,
			Quantity: draft.Quantity,
			Unit:     draft.Unit,
			Price:    draft.Price,
		})
	}
	list.UpdatedAt = now

	s.mu.Lock()
	list.Order = len(s.lists)
	s.lists = append(s.lists, list)
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListCreatedEvent(cloneList(list)))
	return cloneList(list), nil
}

// UpdateList applies a partial update to the list with the given ID and
// returns a copy of the updated list.
func (s *ListStore) UpdateList(listID string, patch domain.ListPatch) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	s.lists[i].Apply(patch)
	updated := cloneList(s.lists[i])
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListUpdatedEvent(updated))
	return updated, nil
}

// DeleteList removes the list with the given ID and re-packs the order of
// the remaining lists.
func (s *ListStore) DeleteList(listID string) error {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return apperrors.NotFoundf("list %s not found", listID)
	}

	s.lists = slices.Delete(s.lists, i, i+1)
	s.normalizeOrderLocked()
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListDeletedEvent(listID, time.Now()))
	return nil
}

// TogglePin flips the pinned state of the list with the given ID,
// refreshes UpdatedAt, and returns a copy of the updated list.
func (s *ListStore) TogglePin(listID string) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	s.lists[i].IsPinned = !s.lists[i].IsPinned
	s.lists[i].Touch()
	updated := cloneList(s.lists[i])
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListUpdatedEvent(updated))
	return updated, nil
}

// ReorderLists rewrites list order to match the position of each ID in the
// supplied sequence. Unknown IDs are ignored; lists missing from the
// sequence keep their relative order after the reordered ones.
func (s *ListStore) ReorderLists(listIDs []string) {
	s.mu.Lock()

	position := make(map[string]int, len(listIDs))
	rank := 0
	for _, listID := range listIDs {
		if s.indexLocked(listID) >= 0 {
			position[listID] = rank
			rank++
		}
	}

	slices.SortStableFunc(s.lists, func(a, b domain.BazaarList) int {
		pa, oka := position[a.ID]
		pb, okb := position[b.ID]
		switch {
		case oka && okb:
			return pa - pb
		case oka:
			return -1
		case okb:
			return 1
		default:
			return a.Order - b.Order
		}
	})
	s.normalizeOrderLocked()
	s.save()
	s.mu.Unlock()
}

// AddItem appends a new item to the list and returns a copy of the updated
// list along with the new item's ID.
func (s *ListStore) AddItem(listID string, draft domain.ItemDraft) (domain.BazaarList, string, error) {
	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return domain.BazaarList{}, "", apperrors.Internalf("failed to generate item ID: %v", err)
	}

	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, "", apperrors.NotFoundf("list %s not found", listID)
	}

	s.lists[i].AppendItem(domain.BazaarItem{
		ID:       itemID,
		Name:     draft.Name,
		TagID:    draft.TagID,
		Quantity: draft.Quantity,
		Unit:     draft.Unit,
		Price:    draft.Price,
	})
	updated := cloneList(s.lists[i])
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListItemsChangedEvent(updated))
	return updated, itemID, nil
}

// UpdateItem applies a partial update to an item. An unknown item ID within
// an existing list is a silent no-op that does not refresh UpdatedAt.
func (s *ListStore) UpdateItem(listID, itemID string, patch domain.ItemPatch) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	changed := s.lists[i].PatchItem(itemID, patch)
	updated := cloneList(s.lists[i])
	if changed {
		s.save()
	}
	s.mu.Unlock()

	if changed {
		s.events.Emit(sse.NewListItemsChangedEvent(updated))
	}
	return updated, nil
}

// DeleteItem removes an item and re-packs the remaining item order. An
// unknown item ID is a silent no-op.
func (s *ListStore) DeleteItem(listID, itemID string) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	changed := s.lists[i].RemoveItem(itemID)
	updated := cloneList(s.lists[i])
	if changed {
		s.save()
	}
	s.mu.Unlock()

	if changed {
		s.events.Emit(sse.NewListItemsChangedEvent(updated))
	}
	return updated, nil
}

// ToggleItemCheck flips the checked state of an item. An unknown item ID is
// a silent no-op.
func (s *ListStore) ToggleItemCheck(listID, itemID string) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	changed := s.lists[i].ToggleItem(itemID)
	updated := cloneList(s.lists[i])
	if changed {
		s.save()
	}
	s.mu.Unlock()

	if changed {
		s.events.Emit(sse.NewListItemsChangedEvent(updated))
	}
	return updated, nil
}

// ReorderItems rewrites item order within a list to match the supplied ID
// sequence.
func (s *ListStore) ReorderItems(listID string, itemIDs []string) (domain.BazaarList, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, apperrors.NotFoundf("list %s not found", listID)
	}

	s.lists[i].ReorderItems(itemIDs)
	updated := cloneList(s.lists[i])
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewListItemsChangedEvent(updated))
	return updated, nil
}

// ClearCheckedItems removes every checked item from the list and returns
// the updated list plus the number of removed items.
func (s *ListStore) ClearCheckedItems(listID string) (domain.BazaarList, int, error) {
	s.mu.Lock()

	i := s.indexLocked(listID)
	if i < 0 {
		s.mu.Unlock()
		return domain.BazaarList{}, 0, apperrors.NotFoundf("list %s not found", listID)
	}

	removed := s.lists[i].ClearChecked()
	updated := cloneList(s.lists[i])
	if removed > 0 {
		s.save()
	}
	s.mu.Unlock()

	if removed > 0 {
		s.events.Emit(sse.NewListItemsChangedEvent(updated))
	}
	return updated, removed, nil
}

// indexLocked returns the index of the list with the given ID, or -1.
// Callers must hold the mutex.
func (s *ListStore) indexLocked(listID string) int {
	return slices.IndexFunc(s.lists, func(l domain.BazaarList) bool {
		return l.ID == listID
	})
}

// normalizeOrderLocked re-assigns dense 0..n-1 order values in slice order.
// Callers must hold the mutex.
func (s *ListStore) normalizeOrderLocked() {
	for i := range s.lists {
		s.lists[i].Order = i
	}
}

// cloneList returns a copy of the list with its own items slice.
func cloneList(l domain.BazaarList) domain.BazaarList {
	l.Items = slices.Clone(l.Items)
	return l
}

// cloneLists returns deep copies of the given lists.
func cloneLists(lists []domain.BazaarList) []domain.BazaarList {
	out := make([]domain.BazaarList, len(lists))
	for i, l := range lists {
		out[i] = cloneList(l)
	}
	return out
}
