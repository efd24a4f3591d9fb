package sorting

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"gallery-sorter/internal/locale"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
)

// GroupKeyFunc returns the bucket key of a media item under method. Methods
// without a key (SortRandom, unknown values) map every item to "".
func GroupKeyFunc(method mediatypes.SortingMethod, dates locale.DateFormatter) func(media.MediaItem) string {
	switch method {
	case mediatypes.SortByDateAsc, mediatypes.SortByDateDesc:
		return func(m media.MediaItem) string { return dates.FormatLongDate(m.CreationDate) }
	case mediatypes.SortByNameAsc, mediatypes.SortByNameDesc:
		return func(m media.MediaItem) string { return firstLetter(m.Name) }
	case mediatypes.SortByRatingAsc, mediatypes.SortByRatingDesc:
		return func(m media.MediaItem) string { return strconv.Itoa(m.RatingOrZero()) }
	case mediatypes.SortByAssociateCountAsc, mediatypes.SortByAssociateCountDesc:
		return func(m media.MediaItem) string { return strconv.Itoa(m.AssociateCountOrZero()) }
	}
	return func(media.MediaItem) string { return "" }
}

func firstLetter(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return strings.ToLower(string(r))
}

// bucket splits items into runs of equal key. A new group starts whenever the
// key differs from the previous item's key; groups keep first-seen order.
func bucket(items []media.MediaItem, key func(media.MediaItem) string) []media.MediaGroup {
	groups := []media.MediaGroup{}
	for _, m := range items {
		k := key(m)
		if len(groups) == 0 || groups[len(groups)-1].Name != k {
			groups = append(groups, media.MediaGroup{Name: k, Media: []media.MediaItem{}})
		}
		last := &groups[len(groups)-1]
		last.Media = append(last.Media, m)
	}
	return groups
}
