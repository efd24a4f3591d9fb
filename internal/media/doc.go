// Package media defines the gallery data model and reads it from disk.
//
// DirectoryContent is the unsorted snapshot of one directory (or one search)
// that the sorting engine consumes; GroupedDirectoryContent is what it
// produces. Scanner builds snapshots from the media directory:
//
//	s := media.NewScanner("/photos", nil)
//	content, err := s.GetDirectory("2021/holiday")
//	results, err := s.Search("beach")
//
// Watch re-emits a fresh snapshot whenever the watched directory changes, so
// a gallery.Service can re-derive its view:
//
//	go s.Watch(ctx, "2021/holiday", cell.Set)
//
// Ratings and face counts come from a MetadataReader; ExifReader provides one
// backed by exiftool. Without a reader, creation dates are file modification
// times and ratings are absent.
package media
