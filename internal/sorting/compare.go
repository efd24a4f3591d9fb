package sorting

import (
	"cmp"
	"strings"

	"gallery-sorter/internal/locale"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
)

// MediaCompareFunc orders two media items like cmp.Compare.
type MediaCompareFunc func(a, b media.MediaItem) int

// DirectoryCompareFunc orders two directory entries like cmp.Compare.
type DirectoryCompareFunc func(a, b media.DirectoryEntry) int

// MediaComparator returns the ordering of method over media items.
// It returns nil for SortRandom, which is not a comparison, and for unknown
// methods.
func MediaComparator(method mediatypes.SortingMethod, collator locale.Collator) MediaCompareFunc {
	if f := ascendingMedia(method, collator); f != nil {
		return f
	}
	if f := ascendingMedia(method.Reverse(), collator); f != nil {
		return func(a, b media.MediaItem) int { return f(b, a) }
	}
	return nil
}

func ascendingMedia(method mediatypes.SortingMethod, collator locale.Collator) MediaCompareFunc {
	switch method {
	case mediatypes.SortByNameAsc:
		return func(a, b media.MediaItem) int { return collator.Compare(a.Name, b.Name) }
	case mediatypes.SortByDateAsc:
		return func(a, b media.MediaItem) int { return cmp.Compare(a.CreationDate, b.CreationDate) }
	case mediatypes.SortByRatingAsc:
		return func(a, b media.MediaItem) int { return cmp.Compare(a.RatingOrZero(), b.RatingOrZero()) }
	case mediatypes.SortByAssociateCountAsc:
		return func(a, b media.MediaItem) int {
			return cmp.Compare(a.AssociateCountOrZero(), b.AssociateCountOrZero())
		}
	}
	return nil
}

// DirectoryComparator returns the ordering of method over directories.
// Directories carry no rating, so rating methods order by name in the same
// direction. Date methods compare LastModified only when byDate is set and
// otherwise also fall back to name. Associate-count methods, SortRandom and
// unknown methods return nil.
func DirectoryComparator(method mediatypes.SortingMethod, collator locale.Collator, byDate bool) DirectoryCompareFunc {
	if f := ascendingDirectory(method, collator, byDate); f != nil {
		return f
	}
	if f := ascendingDirectory(method.Reverse(), collator, byDate); f != nil {
		return func(a, b media.DirectoryEntry) int { return f(b, a) }
	}
	return nil
}

func ascendingDirectory(method mediatypes.SortingMethod, collator locale.Collator, byDate bool) DirectoryCompareFunc {
	switch method {
	case mediatypes.SortByNameAsc, mediatypes.SortByRatingAsc:
		return func(a, b media.DirectoryEntry) int { return collator.Compare(a.Name, b.Name) }
	case mediatypes.SortByDateAsc:
		if byDate {
			return func(a, b media.DirectoryEntry) int { return cmp.Compare(a.LastModified, b.LastModified) }
		}
		return func(a, b media.DirectoryEntry) int { return collator.Compare(a.Name, b.Name) }
	}
	return nil
}

// lowerNameCompare orders case-lowered names byte-wise. It is the canonical
// pre-order of the random shuffle and deliberately ignores collation.
func lowerNameCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
