package mediatypes

import (
	"errors"
	"fmt"
	"strings"
)

// SortingMethod identifies an ordering strategy. The same enumeration is used
// for sorting and for grouping.
type SortingMethod int

const (
	// SortByNameAsc orders by name using natural collation.
	SortByNameAsc SortingMethod = iota + 1
	// SortByNameDesc is the reverse of SortByNameAsc.
	SortByNameDesc
	// SortByDateAsc orders by creation date (media) or modification time (folders).
	SortByDateAsc
	// SortByDateDesc is the reverse of SortByDateAsc.
	SortByDateDesc
	// SortByRatingAsc orders by rating, missing ratings count as 0.
	SortByRatingAsc
	// SortByRatingDesc is the reverse of SortByRatingAsc.
	SortByRatingDesc
	// SortByAssociateCountAsc orders by number of associates (e.g. recognized faces).
	SortByAssociateCountAsc
	// SortByAssociateCountDesc is the reverse of SortByAssociateCountAsc.
	SortByAssociateCountDesc
	// SortRandom is a seeded shuffle.
	SortRandom
)

// ErrUnknownSortingMethod is returned when text cannot be parsed into a SortingMethod.
var ErrUnknownSortingMethod = errors.New("unknown sorting method")

var sortingNames = map[SortingMethod]string{
	SortByNameAsc:            "name-asc",
	SortByNameDesc:           "name-desc",
	SortByDateAsc:            "date-asc",
	SortByDateDesc:           "date-desc",
	SortByRatingAsc:          "rating-asc",
	SortByRatingDesc:         "rating-desc",
	SortByAssociateCountAsc:  "associate-count-asc",
	SortByAssociateCountDesc: "associate-count-desc",
	SortRandom:               "random",
}

// sortingAliases accepts the camel-case names used by pigallery2 configuration files.
var sortingAliases = map[string]SortingMethod{
	"ascname":         SortByNameAsc,
	"descname":        SortByNameDesc,
	"ascdate":         SortByDateAsc,
	"descdate":        SortByDateDesc,
	"ascrating":       SortByRatingAsc,
	"descrating":      SortByRatingDesc,
	"ascpersoncount":  SortByAssociateCountAsc,
	"descpersoncount": SortByAssociateCountDesc,
}

// AllSortingMethods lists every known method in declaration order.
func AllSortingMethods() []SortingMethod {
	return []SortingMethod{
		SortByNameAsc, SortByNameDesc,
		SortByDateAsc, SortByDateDesc,
		SortByRatingAsc, SortByRatingDesc,
		SortByAssociateCountAsc, SortByAssociateCountDesc,
		SortRandom,
	}
}

// String returns the canonical text form, e.g. "date-desc".
func (m SortingMethod) String() string {
	if name, ok := sortingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// IsValid reports whether m is one of the declared methods.
func (m SortingMethod) IsValid() bool {
	_, ok := sortingNames[m]
	return ok
}

// Reverse returns the opposite direction of m. Random and unknown methods are
// returned unchanged.
func (m SortingMethod) Reverse() SortingMethod {
	switch m {
	case SortByNameAsc:
		return SortByNameDesc
	case SortByNameDesc:
		return SortByNameAsc
	case SortByDateAsc:
		return SortByDateDesc
	case SortByDateDesc:
		return SortByDateAsc
	case SortByRatingAsc:
		return SortByRatingDesc
	case SortByRatingDesc:
		return SortByRatingAsc
	case SortByAssociateCountAsc:
		return SortByAssociateCountDesc
	case SortByAssociateCountDesc:
		return SortByAssociateCountAsc
	}
	return m
}

// ParseSortingMethod parses the canonical text form or a pigallery2 alias.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSortingMethod(s string) (SortingMethod, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range sortingNames {
		if name == key {
			return m, nil
		}
	}
	if m, ok := sortingAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSortingMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m SortingMethod) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSortingMethod, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SortingMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseSortingMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// MarkerExtensions maps extensions of metadata files that are reported as
// marker files of the directory they live in.
var MarkerExtensions = map[string]bool{
	".pg2conf": true,
	".md":      true,
	".gpx":     true,
}

// FileType represents the kind of a directory entry.
type FileType string

const (
	// FileTypeFolder represents a directory.
	FileTypeFolder FileType = "folder"
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeMarker represents a directory metadata file.
	FileTypeMarker FileType = "marker"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	if MarkerExtensions[ext] {
		return FileTypeMarker
	}
	return FileTypeOther
}

// IsMediaFile returns true if the extension represents a supported media file.
func IsMediaFile(ext string) bool {
	t := GetFileType(ext)
	return t == FileTypeImage || t == FileTypeVideo
}
