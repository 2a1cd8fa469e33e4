package domain

import (
	"slices"
	"time"
)

// Unit is a measurement unit for a bazaar item quantity.
type Unit string

// Units offered by the item editor. "hali" is a Bangla count of four.
const (
	UnitKg    Unit = "kg"
	UnitG     Unit = "g"
	UnitPcs   Unit = "pcs"
	UnitLitre Unit = "litre"
	UnitMl    Unit = "ml"
	UnitDozen Unit = "dozen"
	UnitHali  Unit = "hali"
	UnitBag   Unit = "bag"
)

// BazaarItem is a single purchasable entry owned by exactly one BazaarList.
// Order is a dense zero-based rank within the parent list, re-packed after
// every structural mutation.
type BazaarItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TagID     string  `json:"tag_id,omitempty"`
	Quantity  string  `json:"quantity"`
	Unit      Unit    `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	IsChecked bool    `json:"is_checked"`
	Order     int     `json:"order"`
}

// BazaarList is a named shopping checklist with an ordered item collection.
// TagID is a weak reference: the tag may have been deleted, and consumers
// treat a failed lookup as "no tag". Order is a dense zero-based rank across
// the whole list collection.
type BazaarList struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	TagID        string       `json:"tag_id,omitempty"`
	IsUrgent     bool         `json:"is_urgent"`
	IsPinned     bool         `json:"is_pinned"`
	Notes        string       `json:"notes,omitempty"`
	IsNotePinned bool         `json:"is_note_pinned"`
	Items        []BazaarItem `json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Order        int          `json:"order"`
}

// Touch updates the UpdatedAt timestamp.
func (l *BazaarList) Touch() {
	l.UpdatedAt = time.Now()
}

// ItemDraft is the caller-supplied payload for a new item.
// Missing quantity defaults to "" and missing price to 0.
type ItemDraft struct {
	Name     string
	TagID    string
	Quantity string
	Unit     Unit
	Price    float64
}

// AppendItem adds an item at the end of the list with the next dense order
// value and refreshes UpdatedAt.
func (l *BazaarList) AppendItem(item BazaarItem) {
	item.Order = len(l.Items)
	l.Items = append(l.Items, item)
	l.Touch()
}

// ItemPatch describes a partial item update. Nil fields are left unchanged.
// The ID is never patchable.
type ItemPatch struct {
	Name     *string
	TagID    *string
	Quantity *string
	Unit     *Unit
	Price    *float64
}

// PatchItem merges the patch into the item with the given ID and refreshes
// UpdatedAt. Returns false without mutation if the item is not found.
func (l *BazaarList) PatchItem(itemID string, patch ItemPatch) bool {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return false
	}
	item := &l.Items[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.TagID != nil {
		item.TagID = *patch.TagID
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	l.Touch()
	return true
}

// RemoveItem deletes the item with the given ID, re-packs the remaining
// order values and refreshes UpdatedAt. Returns false if not found.
func (l *BazaarList) RemoveItem(itemID string) bool {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return false
	}
	l.Items = slices.Delete(l.Items, idx, idx+1)
	l.normalizeItemOrder()
	l.Touch()
	return true
}

// ToggleItem flips the checked state of the item with the given ID and
// refreshes UpdatedAt. Returns false if not found.
func (l *BazaarList) ToggleItem(itemID string) bool {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return false
	}
	l.Items[idx].IsChecked = !l.Items[idx].IsChecked
	l.Touch()
	return true
}

// ReorderItems rewrites item order to match the position of each ID in the
// supplied sequence. IDs not present in the list are ignored; items missing
// from the sequence keep their relative order after the reordered ones, so a
// caller reordering a filtered subset cannot introduce duplicate ranks.
func (l *BazaarList) ReorderItems(itemIDs []string) {
	position := make(map[string]int, len(itemIDs))
	rank := 0
	for _, itemID := range itemIDs {
		if l.itemIndex(itemID) >= 0 {
			position[itemID] = rank
			rank++
		}
	}

	// Items outside the supplied sequence follow, in their current order.
	slices.SortStableFunc(l.Items, func(a, b BazaarItem) int {
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
	l.normalizeItemOrder()
	l.Touch()
}

// ClearChecked removes every checked item, re-packs the remaining order and
// refreshes UpdatedAt. A list with nothing checked is left untouched.
// Returns the number of removed items.
func (l *BazaarList) ClearChecked() int {
	before := len(l.Items)
	l.Items = slices.DeleteFunc(l.Items, func(item BazaarItem) bool {
		return item.IsChecked
	})
	removed := before - len(l.Items)
	if removed > 0 {
		l.normalizeItemOrder()
		l.Touch()
	}
	return removed
}

// ListPatch describes a partial list update. Nil fields are left unchanged.
// Items replacement is wholesale; order values are re-packed on apply.
type ListPatch struct {
	Title        *string
	TagID        *string
	IsUrgent     *bool
	Notes        *string
	IsNotePinned *bool
	Items        []BazaarItem
}

// Apply merges the patch into the list and refreshes UpdatedAt.
func (l *BazaarList) Apply(patch ListPatch) {
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.TagID != nil {
		l.TagID = *patch.TagID
	}
	if patch.IsUrgent != nil {
		l.IsUrgent = *patch.IsUrgent
	}
	if patch.Notes != nil {
		l.Notes = *patch.Notes
	}
	if patch.IsNotePinned != nil {
		l.IsNotePinned = *patch.IsNotePinned
	}
	if patch.Items != nil {
		l.Items = patch.Items
		l.normalizeItemOrder()
	}
	l.Touch()
}

// itemIndex returns the index of the item with the given ID, or -1.
func (l *BazaarList) itemIndex(itemID string) int {
	return slices.IndexFunc(l.Items, func(item BazaarItem) bool {
		return item.ID == itemID
	})
}

// normalizeItemOrder re-assigns dense 0..n-1 order values in slice order.
func (l *BazaarList) normalizeItemOrder() {
	for i := range l.Items {
		l.Items[i].Order = i
	}
}
