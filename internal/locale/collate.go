package locale

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maruel/natural"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NaturalCollation selects the locale-independent natural comparator.
const NaturalCollation = "natural"

// Collator compares strings for display ordering. Compare returns a negative
// number when a sorts before b, zero when they are equal and a positive number
// otherwise. Identical strings always compare as zero.
type Collator interface {
	Compare(a, b string) int
}

// TextCollator is a numeric-aware collator for a specific language, so that
// "img2" sorts before "img10".
type TextCollator struct {
	mu  sync.Mutex // collate.Collator reuses internal buffers
	c   *collate.Collator
	tag language.Tag
}

// NewCollator returns the collator for a BCP 47 tag such as "en", "de-CH" or
// "und". The value "natural" (or an empty string) returns Natural.
func NewCollator(tag string) (Collator, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, NaturalCollation) {
		return Natural{}, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", tag, err)
	}
	return &TextCollator{
		c:   collate.New(t, collate.Numeric),
		tag: t,
	}, nil
}

// Compare implements Collator.
func (c *TextCollator) Compare(a, b string) int {
	if a == b {
		return 0
	}
	c.mu.Lock()
	r := c.c.CompareString(a, b)
	c.mu.Unlock()
	if r != 0 {
		return r
	}
	// Collation-equal but different strings still need a deterministic order.
	return strings.Compare(a, b)
}

// Tag returns the language the collator was built for.
func (c *TextCollator) Tag() language.Tag {
	return c.tag
}

// Natural compares digit runs by numeric value and everything else byte-wise.
type Natural struct{}

// Compare implements Collator.
func (Natural) Compare(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return strings.Compare(a, b)
}
