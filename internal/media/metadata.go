package media

import (
	"fmt"
	"time"

	"gallery-sorter/internal/logging"

	"github.com/barasher/go-exiftool"
)

// exifDate is the layout of EXIF DateTimeOriginal values.
const exifDate = "2006:01:02 15:04:05"

// Metadata holds the fields the sorting engine reads from embedded media metadata.
type Metadata struct {
	CreationDate   time.Time
	Rating         *int
	AssociateCount *int
}

// MetadataReader extracts Metadata for a batch of files, keyed by the paths
// it was given. Files without readable metadata are omitted.
type MetadataReader interface {
	ReadMetadata(paths []string) map[string]Metadata
}

// ExifReader reads metadata through a long-running exiftool process.
type ExifReader struct {
	et *exiftool.Exiftool
}

// NewExifReader starts exiftool. It fails when the exiftool binary is missing.
func NewExifReader() (*ExifReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExifReader{et: et}, nil
}

// ReadMetadata implements MetadataReader. DateTimeOriginal becomes the
// creation date, XMP Rating the rating and the number of MWG region names
// (tagged faces) the associate count.
func (r *ExifReader) ReadMetadata(paths []string) map[string]Metadata {
	out := make(map[string]Metadata, len(paths))
	for _, fi := range r.et.ExtractMetadata(paths...) {
		if fi.Err != nil {
			logging.Debug("exiftool failed for %s: %v", fi.File, fi.Err)
			continue
		}

		var md Metadata
		if ds, err := fi.GetString("DateTimeOriginal"); err == nil {
			if t, err := time.ParseInLocation(exifDate, ds, time.Local); err == nil {
				md.CreationDate = t
			}
		}
		if v, err := fi.GetInt("Rating"); err == nil {
			rating := int(v)
			md.Rating = &rating
		}
		if names, err := fi.GetStrings("RegionName"); err == nil {
			count := len(names)
			md.AssociateCount = &count
		}
		out[fi.File] = md
	}
	return out
}

// Close stops the exiftool process.
func (r *ExifReader) Close() error {
	return r.et.Close()
}
