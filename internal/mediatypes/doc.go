// Package mediatypes provides shared type definitions for the gallery sorter.
//
// This package exists as a dependency-free foundation that can be imported by other
// packages without creating import cycles. It contains primitive types, constants,
// and pure utility functions with no external dependencies beyond the standard library.
//
// # Sorting Methods
//
// SortingMethod is a closed enumeration used both to order items and to derive
// group keys:
//
//	mediatypes.SortByNameAsc            // natural name order
//	mediatypes.SortByDateDesc           // newest first
//	mediatypes.SortByAssociateCountDesc // most faces first
//	mediatypes.SortRandom               // seeded shuffle
//
// The text form ("name-asc", "date-desc", ...) is what configuration files,
// environment variables and the override stores carry:
//
//	m, err := mediatypes.ParseSortingMethod("date-desc")
//	if errors.Is(err, mediatypes.ErrUnknownSortingMethod) {
//	    // reject input
//	}
//
// # File Types
//
// Use GetFileType to classify a directory entry by extension:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	switch mediatypes.GetFileType(ext) {
//	case mediatypes.FileTypeImage, mediatypes.FileTypeVideo:
//	    // media item
//	case mediatypes.FileTypeMarker:
//	    // directory metadata file
//	}
package mediatypes
