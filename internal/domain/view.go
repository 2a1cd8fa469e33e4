package domain

import (
	"slices"
	"strings"
)

// SortMode selects the comparator for the home grid.
type SortMode string

// Sort modes offered by the filter sheet. Any other value falls back to
// manual order.
const (
	SortNewest       SortMode = "newest"
	SortOldest       SortMode = "oldest"
	SortCategory     SortMode = "category"
	SortAlphabetical SortMode = "alphabetical"
)

// TagNameResolver maps a tag ID to its display name. Unresolved (dangling)
// IDs must yield "" so deleted tags sort as untagged.
type TagNameResolver func(tagID string) string

// SortLists returns the lists grouped pinned-first, each group sorted by the
// given mode. Grouping and ordering are computed at read time; the stored
// Order field is never rewritten here.
func SortLists(lists []BazaarList, mode SortMode, tagName TagNameResolver) []BazaarList {
	if tagName == nil {
		tagName = func(string) string { return "" }
	}

	cmp := func(a, b BazaarList) int {
		switch mode {
		case SortNewest:
			return b.CreatedAt.Compare(a.CreatedAt)
		case SortOldest:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortAlphabetical:
			return strings.Compare(a.Title, b.Title)
		case SortCategory:
			return strings.Compare(tagName(a.TagID), tagName(b.TagID))
		default:
			return a.Order - b.Order
		}
	}

	var pinned, unpinned []BazaarList
	for _, l := range lists {
		if l.IsPinned {
			pinned = append(pinned, l)
		} else {
			unpinned = append(unpinned, l)
		}
	}
	slices.SortStableFunc(pinned, cmp)
	slices.SortStableFunc(unpinned, cmp)

	out := make([]BazaarList, 0, len(lists))
	out = append(out, pinned...)
	return append(out, unpinned...)
}

// FilterByTags keeps lists whose TagID is in the given set. An empty set
// means no filter. Untagged lists never match a non-empty filter.
func FilterByTags(lists []BazaarList, tagIDs []string) []BazaarList {
	if len(tagIDs) == 0 {
		return lists
	}
	out := make([]BazaarList, 0, len(lists))
	for _, l := range lists {
		if l.TagID != "" && slices.Contains(tagIDs, l.TagID) {
			out = append(out, l)
		}
	}
	return out
}

// SearchLists keeps lists matching the query as a case-insensitive substring
// of the title, any item name, or the notes. A blank query matches everything.
func SearchLists(lists []BazaarList, query string) []BazaarList {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return lists
	}
	out := make([]BazaarList, 0, len(lists))
	for _, l := range lists {
		if matchesQuery(&l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matchesQuery(l *BazaarList, q string) bool {
	if strings.Contains(strings.ToLower(l.Title), q) {
		return true
	}
	for _, item := range l.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return l.Notes != "" && strings.Contains(strings.ToLower(l.Notes), q)
}

// SortItems returns the items in display order. With moveCompletedToBottom,
// unchecked items come first; each group is sorted by stored order.
func SortItems(items []BazaarItem, moveCompletedToBottom bool) []BazaarItem {
	out := slices.Clone(items)
	byOrder := func(a, b BazaarItem) int { return a.Order - b.Order }

	if !moveCompletedToBottom {
		slices.SortStableFunc(out, byOrder)
		return out
	}

	slices.SortStableFunc(out, func(a, b BazaarItem) int {
		if a.IsChecked != b.IsChecked {
			if a.IsChecked {
				return 1
			}
			return -1
		}
		return byOrder(a, b)
	})
	return out
}

// CheckedItems returns the checked subset in input order.
func CheckedItems(items []BazaarItem) []BazaarItem {
	out := make([]BazaarItem, 0, len(items))
	for _, item := range items {
		if item.IsChecked {
			out = append(out, item)
		}
	}
	return out
}

// UncheckedItems returns the unchecked subset in input order.
func UncheckedItems(items []BazaarItem) []BazaarItem {
	out := make([]BazaarItem, 0, len(items))
	for _, item := range items {
		if !item.IsChecked {
			out = append(out, item)
		}
	}
	return out
}
