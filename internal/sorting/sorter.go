package sorting

import (
	"cmp"
	"slices"

	"gallery-sorter/internal/locale"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/seededrand"
)

// Options configures a Sorter. Zero values select the defaults.
type Options struct {
	// Collator orders names. Defaults to locale.Natural.
	Collator locale.Collator
	// Dates formats date group keys. Defaults to DefaultLongDateLayout in the
	// local timezone.
	Dates locale.DateFormatter
	// Random drives SortRandom. Defaults to seededrand.New(0).
	Random *seededrand.Generator
	// DirectorySortingByDate enables LastModified ordering of directories.
	DirectorySortingByDate bool
}

// Sorter sorts and groups directory snapshots.
//
// A Sorter owns its random generator and is not safe for concurrent use.
type Sorter struct {
	collator locale.Collator
	dates    locale.DateFormatter
	rng      *seededrand.Generator
	byDate   bool
}

// NewSorter creates a Sorter.
func NewSorter(opts Options) *Sorter {
	s := &Sorter{
		collator: opts.Collator,
		dates:    opts.Dates,
		rng:      opts.Random,
		byDate:   opts.DirectorySortingByDate,
	}
	if s.collator == nil {
		s.collator = locale.Natural{}
	}
	if s.dates == nil {
		s.dates, _ = locale.NewDateFormatter(locale.DefaultLongDateLayout, "")
	}
	if s.rng == nil {
		s.rng = seededrand.New(0)
	}
	return s
}

// SortMedia sorts items in place. Nil or empty slices and unknown methods are
// left untouched.
func (s *Sorter) SortMedia(method mediatypes.SortingMethod, items []media.MediaItem) {
	if len(items) == 0 {
		return
	}
	if method == mediatypes.SortRandom {
		shuffleMedia(s.rng, items)
		return
	}
	if compare := MediaComparator(method, s.collator); compare != nil {
		slices.SortStableFunc(items, compare)
	}
}

// SortDirectories sorts dirs in place. Nil or empty slices and methods
// without a directory ordering are left untouched.
func (s *Sorter) SortDirectories(method mediatypes.SortingMethod, dirs []media.DirectoryEntry) {
	if len(dirs) == 0 {
		return
	}
	if method == mediatypes.SortRandom {
		shuffleDirectories(s.rng, dirs)
		return
	}
	if compare := DirectoryComparator(method, s.collator, s.byDate); compare != nil {
		slices.SortStableFunc(dirs, compare)
	}
}

// GroupMedia sorts items in place by grouping and splits them into groups
// keyed by GroupKeyFunc(grouping). The groups share items' backing array.
func (s *Sorter) GroupMedia(grouping mediatypes.SortingMethod, items []media.MediaItem) []media.MediaGroup {
	s.SortMedia(grouping, items)
	return bucket(items, GroupKeyFunc(grouping, s.dates))
}

// Apply derives the grouped view of content. Directories are ordered by
// sorting; media is grouped by grouping and every group is then ordered by
// sorting on its own. content is not modified. A nil content yields nil.
func (s *Sorter) Apply(content *media.DirectoryContent, sorting, grouping mediatypes.SortingMethod) *media.GroupedDirectoryContent {
	if content == nil {
		return nil
	}

	out := &media.GroupedDirectoryContent{
		Key:         content.Key,
		Path:        content.Path,
		Name:        content.Name,
		SearchQuery: content.SearchQuery,
		Directories: slices.Clone(content.Directories),
		MarkerFiles: slices.Clone(content.MarkerFiles),
		MediaGroups: []media.MediaGroup{},
	}

	s.SortDirectories(sorting, out.Directories)
	slices.SortStableFunc(out.MarkerFiles, func(a, b media.MarkerFile) int {
		if c := cmp.Compare(a.LastModified, b.LastModified); c != 0 {
			return c
		}
		return s.collator.Compare(a.Name, b.Name)
	})

	if content.Media != nil {
		groups := s.GroupMedia(grouping, slices.Clone(content.Media))
		for i := range groups {
			// Detach each group from the shared backing array.
			groups[i].Media = slices.Clone(groups[i].Media)
			s.SortMedia(sorting, groups[i].Media)
		}
		out.MediaGroups = groups
	}

	return out
}
