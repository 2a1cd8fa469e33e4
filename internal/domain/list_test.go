package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList() *BazaarList {
	now := time.Now().Add(-time.Hour)
	return &BazaarList{
		ID:        "list-1",
		Title:     "Weekly Bazaar",
		CreatedAt: now,
		UpdatedAt: now,
		Items: []BazaarItem{
			{ID: "item-rice", Name: "Rice", Quantity: "5", Price: 60, Order: 0},
			{ID: "item-oil", Name: "Oil", Price: 120, Order: 1},
			{ID: "item-salt", Name: "Salt", Price: 35, Order: 2},
		},
	}
}

func assertDenseOrder(t *testing.T, items []BazaarItem) {
	t.Helper()
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		assert.GreaterOrEqual(t, item.Order, 0)
		assert.Less(t, item.Order, len(items))
		assert.False(t, seen[item.Order], "duplicate order %d", item.Order)
		seen[item.Order] = true
	}
}

func TestBazaarList_AppendItem_AssignsNextOrder(t *testing.T) {
	l := newTestList()
	before := l.UpdatedAt

	l.AppendItem(BazaarItem{ID: "item-lentils", Name: "Lentils", Price: 90})

	require.Len(t, l.Items, 4)
	assert.Equal(t, 3, l.Items[3].Order)
	assert.True(t, l.UpdatedAt.After(before))
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_RemoveItem_RepacksOrder(t *testing.T) {
	l := newTestList()

	require.True(t, l.RemoveItem("item-oil"))

	require.Len(t, l.Items, 2)
	assert.Equal(t, "Rice", l.Items[0].Name)
	assert.Equal(t, "Salt", l.Items[1].Name)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_RemoveItem_UnknownIDIsNoop(t *testing.T) {
	l := newTestList()
	before := l.UpdatedAt

	assert.False(t, l.RemoveItem("item-ghost"))
	assert.Len(t, l.Items, 3)
	assert.Equal(t, before, l.UpdatedAt)
}

func TestBazaarList_ToggleItem_TwiceRestoresState(t *testing.T) {
	l := newTestList()

	require.True(t, l.ToggleItem("item-rice"))
	assert.True(t, l.Items[0].IsChecked)
	afterFirst := l.UpdatedAt

	require.True(t, l.ToggleItem("item-rice"))
	assert.False(t, l.Items[0].IsChecked)
	assert.True(t, !l.UpdatedAt.Before(afterFirst), "second toggle must still refresh UpdatedAt")

	// Nothing else changed.
	assert.Equal(t, "Rice", l.Items[0].Name)
	assert.Equal(t, 0, l.Items[0].Order)
}

func TestBazaarList_PatchItem_MergesFields(t *testing.T) {
	l := newTestList()
	name := "Miniket Rice"
	price := 72.5
	unit := UnitKg

	require.True(t, l.PatchItem("item-rice", ItemPatch{Name: &name, Price: &price, Unit: &unit}))

	assert.Equal(t, "Miniket Rice", l.Items[0].Name)
	assert.Equal(t, 72.5, l.Items[0].Price)
	assert.Equal(t, UnitKg, l.Items[0].Unit)
	// Untouched fields survive.
	assert.Equal(t, "5", l.Items[0].Quantity)
	assert.Equal(t, "item-rice", l.Items[0].ID)
}

func TestBazaarList_ClearChecked_RepacksRemaining(t *testing.T) {
	l := newTestList()
	l.ToggleItem("item-rice")
	l.ToggleItem("item-salt")

	removed := l.ClearChecked()

	assert.Equal(t, 2, removed)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Oil", l.Items[0].Name)
	assert.Equal(t, 0, l.Items[0].Order)
}

func TestBazaarList_ClearChecked_NothingChecked(t *testing.T) {
	l := newTestList()

	assert.Equal(t, 0, l.ClearChecked())
	assert.Len(t, l.Items, 3)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_ReorderItems_FullSequence(t *testing.T) {
	l := newTestList()

	l.ReorderItems([]string{"item-salt", "item-rice", "item-oil"})

	assert.Equal(t, "Salt", l.Items[0].Name)
	assert.Equal(t, "Rice", l.Items[1].Name)
	assert.Equal(t, "Oil", l.Items[2].Name)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_ReorderItems_PartialSequenceKeepsRest(t *testing.T) {
	l := newTestList()

	// A filtered view reorders just two items; the third must keep a valid
	// dense rank instead of going stale.
	l.ReorderItems([]string{"item-oil", "item-rice"})

	assert.Equal(t, "Oil", l.Items[0].Name)
	assert.Equal(t, "Rice", l.Items[1].Name)
	assert.Equal(t, "Salt", l.Items[2].Name)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_ReorderItems_IgnoresUnknownIDs(t *testing.T) {
	l := newTestList()

	l.ReorderItems([]string{"item-ghost", "item-salt", "item-rice", "item-oil"})

	assert.Equal(t, "Salt", l.Items[0].Name)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_Apply_ItemsReplacementRepacksOrder(t *testing.T) {
	l := newTestList()
	title := "Eid Bazaar"

	l.Apply(ListPatch{
		Title: &title,
		Items: []BazaarItem{
			{ID: "item-a", Name: "Semai", Order: 7},
			{ID: "item-b", Name: "Milk", Order: 7},
		},
	})

	assert.Equal(t, "Eid Bazaar", l.Title)
	require.Len(t, l.Items, 2)
	assertDenseOrder(t, l.Items)
}

func TestBazaarList_Apply_NilFieldsUntouched(t *testing.T) {
	l := newTestList()
	urgent := true

	l.Apply(ListPatch{IsUrgent: &urgent})

	assert.True(t, l.IsUrgent)
	assert.Equal(t, "Weekly Bazaar", l.Title)
	assert.Len(t, l.Items, 3)
}

func TestTag_NameEquals_IgnoresCase(t *testing.T) {
	tag := &Tag{ID: "tag-1", Name: "Grocery"}

	assert.True(t, tag.NameEquals("grocery"))
	assert.True(t, tag.NameEquals("GROCERY"))
	assert.False(t, tag.NameEquals("groceries"))
}

func TestTag_Apply(t *testing.T) {
	tag := &Tag{ID: "tag-1", Name: "Fish", Color: "#8B5CF6"}
	color := "#000000"

	tag.Apply(TagPatch{Color: &color})

	assert.Equal(t, "Fish", tag.Name)
	assert.Equal(t, "#000000", tag.Color)
}

func TestUserProfile_Apply_PartialMerge(t *testing.T) {
	p := &UserProfile{Name: "Rahim"}
	email := "rahim@example.com"

	p.Apply(ProfilePatch{Email: &email})

	assert.Equal(t, "Rahim", p.Name)
	assert.Equal(t, "rahim@example.com", p.Email)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, ThemeLight, s.ThemeMode)
	assert.Equal(t, LanguageBangla, s.Language)
	assert.Equal(t, "BDT", s.Currency)
	assert.Equal(t, "৳", s.CurrencySymbol)
	assert.True(t, s.ShowTotalPrice)
	assert.True(t, s.MoveCompletedToBottom)
	assert.False(t, s.HapticFeedback)
}

func TestDefaultTags_UniqueNames(t *testing.T) {
	tags := DefaultTags()
	require.Len(t, tags, 7)

	names := make(map[string]bool)
	for _, tag := range tags {
		assert.NotEmpty(t, tag.ID)
		assert.NotEmpty(t, tag.Color)
		assert.False(t, names[tag.Name])
		names[tag.Name] = true
	}
}
