package sorting

import (
	"fmt"
	"slices"
	"testing"

	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
)

func manyItems(n int) []media.MediaItem {
	items := make([]media.MediaItem, n)
	for i := range items {
		items[i] = media.MediaItem{Name: fmt.Sprintf("photo_%03d.jpg", i)}
	}
	return items
}

func TestRandomOrderIsReproducible(t *testing.T) {
	t.Parallel()

	first := manyItems(40)
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, first)

	// A separate sorter with a scrambled input reaches the same permutation
	// because the canonical pre-order removes the input order.
	second := manyItems(40)
	slices.Reverse(second)
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, second)

	if !slices.Equal(names(first), names(second)) {
		t.Errorf("random order differs between invocations:\n%v\n%v", names(first), names(second))
	}

	// The same sorter reseeds on every call.
	s := NewSorter(Options{})
	third := manyItems(40)
	s.SortMedia(mediatypes.SortRandom, third)
	s.SortMedia(mediatypes.SortRandom, third)
	if !slices.Equal(names(first), names(third)) {
		t.Errorf("random order not stable across calls on one sorter")
	}
}

func TestRandomOrderIsPermutation(t *testing.T) {
	t.Parallel()

	items := manyItems(25)
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, items)

	got := names(items)
	slices.Sort(got)
	if !slices.Equal(got, names(manyItems(25))) {
		t.Errorf("random order lost or duplicated items: %v", got)
	}
}

func TestRandomOrderShuffles(t *testing.T) {
	t.Parallel()

	items := manyItems(50)
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, items)
	if slices.Equal(names(items), names(manyItems(50))) {
		t.Error("random order of 50 items equals the name order")
	}
}

func TestRandomDirectoriesReproducible(t *testing.T) {
	t.Parallel()

	mk := func() []media.DirectoryEntry {
		dirs := make([]media.DirectoryEntry, 20)
		for i := range dirs {
			dirs[i] = media.DirectoryEntry{Name: fmt.Sprintf("Album %02d", i)}
		}
		return dirs
	}

	a := mk()
	NewSorter(Options{}).SortDirectories(mediatypes.SortRandom, a)
	b := mk()
	slices.Reverse(b)
	NewSorter(Options{}).SortDirectories(mediatypes.SortRandom, b)

	if !slices.Equal(dirNames(a), dirNames(b)) {
		t.Errorf("random directory order differs:\n%v\n%v", dirNames(a), dirNames(b))
	}
}

func TestShuffleCanonicalPreOrder(t *testing.T) {
	t.Parallel()

	// The permutation depends on the set of names, not on the input order.
	upper := []media.MediaItem{{Name: "B.jpg"}, {Name: "a.jpg"}, {Name: "C.jpg"}}
	lower := []media.MediaItem{{Name: "C.jpg"}, {Name: "B.jpg"}, {Name: "a.jpg"}}

	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, upper)
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, lower)
	if !slices.Equal(names(upper), names(lower)) {
		t.Errorf("pre-order should be case-insensitive: %v vs %v", names(upper), names(lower))
	}

	single := []media.MediaItem{{Name: "only.jpg"}}
	NewSorter(Options{}).SortMedia(mediatypes.SortRandom, single)
	if single[0].Name != "only.jpg" {
		t.Errorf("single item moved: %v", names(single))
	}
}
