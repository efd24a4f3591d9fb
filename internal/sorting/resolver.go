package sorting

import (
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
)

// MarkerMapping maps a marker file name to the sorting method it selects.
type MarkerMapping struct {
	File   string                   `json:"file"`
	Method mediatypes.SortingMethod `json:"method"`
}

// Defaults holds the configured fallback sorting methods.
type Defaults struct {
	Photo  mediatypes.SortingMethod
	Search mediatypes.SortingMethod
	// Markers is checked in order; the first entry whose file is present wins.
	Markers []MarkerMapping
}

// DefaultMarkerMappings returns the pigallery2 sorting marker file names in
// the order pigallery2 declares them, descending variants first.
func DefaultMarkerMappings() []MarkerMapping {
	return []MarkerMapping{
		{File: ".order_descending_name.pg2conf", Method: mediatypes.SortByNameDesc},
		{File: ".order_ascending_name.pg2conf", Method: mediatypes.SortByNameAsc},
		{File: ".order_descending_date.pg2conf", Method: mediatypes.SortByDateDesc},
		{File: ".order_ascending_date.pg2conf", Method: mediatypes.SortByDateAsc},
		{File: ".order_descending_rating.pg2conf", Method: mediatypes.SortByRatingDesc},
		{File: ".order_ascending_rating.pg2conf", Method: mediatypes.SortByRatingAsc},
		{File: ".order_random.pg2conf", Method: mediatypes.SortRandom},
	}
}

// Resolver resolves the default sorting method of a directory snapshot.
type Resolver struct {
	defaults Defaults
}

// NewResolver creates a Resolver. The marker list is copied.
func NewResolver(d Defaults) *Resolver {
	d.Markers = append([]MarkerMapping(nil), d.Markers...)
	return &Resolver{defaults: d}
}

// DefaultSorting returns the sorting method content gets when no override is
// stored. A nil content resolves to the photo default.
func (r *Resolver) DefaultSorting(content *media.DirectoryContent) mediatypes.SortingMethod {
	if content == nil {
		return r.defaults.Photo
	}
	if len(content.MarkerFiles) > 0 {
		for _, m := range r.defaults.Markers {
			if content.HasMarkerFile(m.File) {
				return m.Method
			}
		}
	}
	if content.IsSearchResult() {
		return r.defaults.Search
	}
	return r.defaults.Photo
}
