package sorting

import (
	"slices"

	"gallery-sorter/internal/media"
	"gallery-sorter/internal/seededrand"
)

// shuffle puts items into a canonical order with canonical, reseeds rng with
// the list length and then runs a second stable sort whose comparator ignores
// its arguments and returns the sign of rng.Next()-0.5.
//
// The permutation only depends on the input set, its length and the
// generator salt. It is not uniform; sort-driven shuffles are biased.
func shuffle[T any](rng *seededrand.Generator, items []T, canonical func(a, b T) int) {
	slices.SortStableFunc(items, canonical)
	rng.SetSeed(len(items))
	slices.SortStableFunc(items, func(_, _ T) int {
		switch v := rng.Next() - 0.5; {
		case v < 0:
			return -1
		case v > 0:
			return 1
		}
		return 0
	})
}

// shuffleMedia pre-orders media by ascending lower-cased name.
func shuffleMedia(rng *seededrand.Generator, items []media.MediaItem) {
	shuffle(rng, items, func(a, b media.MediaItem) int {
		return lowerNameCompare(a.Name, b.Name)
	})
}

// shuffleDirectories pre-orders directories by descending lower-cased name.
// Unlike shuffleMedia the pre-order is descending; changing it changes every
// random directory order users have seen.
func shuffleDirectories(rng *seededrand.Generator, dirs []media.DirectoryEntry) {
	shuffle(rng, dirs, func(a, b media.DirectoryEntry) int {
		return lowerNameCompare(b.Name, a.Name)
	})
}
