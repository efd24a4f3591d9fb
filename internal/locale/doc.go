// Package locale provides the locale-sensitive collaborators of the sorting
// engine: string collation for name ordering and long-date formatting for
// date grouping.
//
// NewCollator("en") returns a numeric-aware collator from golang.org/x/text;
// NewCollator("natural") returns a locale-independent comparator built on
// github.com/maruel/natural. Both order "img2" before "img10".
package locale
