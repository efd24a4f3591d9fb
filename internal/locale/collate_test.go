package locale

import (
	"slices"
	"testing"
)

func collators(t *testing.T) map[string]Collator {
	t.Helper()
	und, err := NewCollator("und")
	if err != nil {
		t.Fatalf("NewCollator(und) failed: %v", err)
	}
	en, err := NewCollator("en")
	if err != nil {
		t.Fatalf("NewCollator(en) failed: %v", err)
	}
	return map[string]Collator{
		"natural": Natural{},
		"und":     und,
		"en":      en,
	}
}

func TestCollatorNumericAware(t *testing.T) {
	t.Parallel()

	for name, c := range collators(t) {
		t.Run(name, func(t *testing.T) {
			names := []string{"img2", "img10", "img1"}
			slices.SortStableFunc(names, c.Compare)

			want := []string{"img1", "img2", "img10"}
			if !slices.Equal(names, want) {
				t.Errorf("sorted = %v, want %v", names, want)
			}
		})
	}
}

func TestCollatorIdenticalStrings(t *testing.T) {
	t.Parallel()

	for name, c := range collators(t) {
		t.Run(name, func(t *testing.T) {
			for _, s := range []string{"", "a", "IMG_0001.jpg", "Ünïcödé"} {
				if got := c.Compare(s, s); got != 0 {
					t.Errorf("Compare(%q, %q) = %d, want 0", s, s, got)
				}
			}
		})
	}
}

func TestCollatorAntisymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"a", "b"},
		{"photo9", "photo10"},
		{"a", "A"},
		{"beach", "Beach"},
	}
	for name, c := range collators(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range pairs {
				ab, ba := c.Compare(p[0], p[1]), c.Compare(p[1], p[0])
				if ab == 0 || ba == 0 {
					t.Errorf("Compare(%q, %q) should not tie for distinct strings", p[0], p[1])
				}
				if (ab < 0) == (ba < 0) {
					t.Errorf("Compare(%q, %q) = %d and reverse = %d are not opposite", p[0], p[1], ab, ba)
				}
			}
		})
	}
}

func TestNewCollatorInvalidTag(t *testing.T) {
	t.Parallel()

	if _, err := NewCollator("not a locale!"); err == nil {
		t.Error("NewCollator with an invalid tag should fail")
	}
}

func TestNewCollatorNaturalAliases(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"", "natural", "NATURAL"} {
		c, err := NewCollator(tag)
		if err != nil {
			t.Fatalf("NewCollator(%q) failed: %v", tag, err)
		}
		if _, ok := c.(Natural); !ok {
			t.Errorf("NewCollator(%q) = %T, want Natural", tag, c)
		}
	}
}
