package media

import (
	"strings"
	"time"

	"gallery-sorter/internal/mediatypes"
)

// MediaItem represents a photo or video.
type MediaItem struct {
	Name string              `json:"name"`
	Path string              `json:"path"`
	Type mediatypes.FileType `json:"type"`
	// CreationDate is a Unix timestamp in milliseconds.
	CreationDate int64 `json:"creationDate"`
	// Rating is nil when the item carries no rating.
	Rating *int `json:"rating,omitempty"`
	// AssociateCount is the number of associated people (recognized faces).
	// Nil when unknown.
	AssociateCount *int `json:"associateCount,omitempty"`
}

// RatingOrZero returns the rating, treating a missing rating as 0.
func (m MediaItem) RatingOrZero() int {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

// AssociateCountOrZero returns the associate count, treating a missing value as 0.
func (m MediaItem) AssociateCountOrZero() int {
	if m.AssociateCount == nil {
		return 0
	}
	return *m.AssociateCount
}

// CreatedAt returns CreationDate as a time.Time.
func (m MediaItem) CreatedAt() time.Time {
	return time.UnixMilli(m.CreationDate)
}

// DirectoryEntry represents a sub-directory.
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// LastModified is a Unix timestamp in milliseconds.
	LastModified int64 `json:"lastModified"`
	ItemCount    int   `json:"itemCount,omitempty"`
}

// MarkerFile describes a metadata file found in a directory.
type MarkerFile struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	LastModified int64  `json:"lastModified"`
}

// DirectoryContent is the unsorted snapshot of one directory or one search.
// It must not be modified once handed to the sorting engine.
type DirectoryContent struct {
	// Key identifies the directory (or search) for the override cache.
	Key         string           `json:"key"`
	Path        string           `json:"path"`
	Name        string           `json:"name"`
	SearchQuery string           `json:"searchQuery,omitempty"`
	Directories []DirectoryEntry `json:"directories"`
	Media       []MediaItem      `json:"media"`
	MarkerFiles []MarkerFile     `json:"markerFiles"`
}

// DirectoryKey returns the override cache key of a directory path.
func DirectoryKey(path string) string {
	return "dir:" + path
}

// SearchKey returns the override cache key of a search query.
func SearchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}

// IsSearchResult reports whether the snapshot came from a search.
func (c *DirectoryContent) IsSearchResult() bool {
	return c.SearchQuery != ""
}

// HasMarkerFile reports whether a marker file with exactly this name exists.
func (c *DirectoryContent) HasMarkerFile(name string) bool {
	for _, f := range c.MarkerFiles {
		if f.Name == name {
			return true
		}
	}
	return false
}

// MediaGroup is a named bucket of media items.
type MediaGroup struct {
	Name  string      `json:"name"`
	Media []MediaItem `json:"media"`
}

// GroupedDirectoryContent is the sorted and grouped view of a DirectoryContent.
type GroupedDirectoryContent struct {
	Key         string           `json:"key"`
	Path        string           `json:"path"`
	Name        string           `json:"name"`
	SearchQuery string           `json:"searchQuery,omitempty"`
	Directories []DirectoryEntry `json:"directories"`
	MarkerFiles []MarkerFile     `json:"markerFiles"`
	MediaGroups []MediaGroup     `json:"mediaGroups"`
}

// MediaCount returns the number of media items across all groups.
func (g *GroupedDirectoryContent) MediaCount() int {
	n := 0
	for _, grp := range g.MediaGroups {
		n += len(grp.Media)
	}
	return n
}
