package domain

import "strings"

// Tag is a user-defined category label attached to lists and items.
// Names are unique case-insensitively across all tags; Color is a free-form
// display token with no uniqueness constraint.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NameEquals reports whether the tag's name matches the given name,
// ignoring case. Uniqueness checks use this comparison.
func (t *Tag) NameEquals(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// TagPatch describes a partial tag update. Nil fields are left unchanged.
type TagPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into the tag.
func (t *Tag) Apply(patch TagPatch) {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
}

// DefaultTags returns the seed tag set used when no tags record exists yet.
// Once stored these are ordinary mutable data: editable and deletable.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "tag-grocery", Name: "Grocery", Color: "#34C759"},
		{ID: "tag-bazaar", Name: "Bazaar", Color: "#3B82F6"},
		{ID: "tag-essentials", Name: "Essentials", Color: "#F59E0B"},
		{ID: "tag-vegetables", Name: "Vegetables", Color: "#14B8A6"},
		{ID: "tag-fruits", Name: "Fruits", Color: "#EC4899"},
		{ID: "tag-fish", Name: "Fish", Color: "#8B5CF6"},
		{ID: "tag-meat", Name: "Meat", Color: "#EF4444"},
	}
}
