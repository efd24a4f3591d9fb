// Package gallery holds the sorting state of a gallery view and derives its
// grouped content.
//
// A [Service] keeps the current sorting and grouping methods as observable
// cells. [Service.ApplySorting] turns a stream of directory snapshots into a
// stream of grouped views that is recomputed whenever the content, the
// sorting method or the grouping method changes. For every snapshot the
// Service adopts the stored per-directory override, or the resolved default
// when none is stored, before the view is computed.
//
// Recomputation is synchronous: each emitted view corresponds to exactly one
// input change, in the order the changes happened.
package gallery
