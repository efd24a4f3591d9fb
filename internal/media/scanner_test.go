package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// writeFile creates a file with a fixed modification time.
func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func setupMediaDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	base := time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC)

	writeFile(t, filepath.Join(root, "album", "img1.jpg"), base)
	writeFile(t, filepath.Join(root, "album", "img10.jpg"), base.Add(time.Hour))
	writeFile(t, filepath.Join(root, "album", "clip.mp4"), base.Add(2*time.Hour))
	writeFile(t, filepath.Join(root, "album", "readme.md"), base)
	writeFile(t, filepath.Join(root, "album", ".order_random.pg2conf"), base)
	writeFile(t, filepath.Join(root, "album", ".hidden.jpg"), base)
	writeFile(t, filepath.Join(root, "album", "notes.txt"), base)
	writeFile(t, filepath.Join(root, "album", "beach", "sunset.jpg"), base)
	writeFile(t, filepath.Join(root, "album", "beach", "Beach-party.png"), base)
	writeFile(t, filepath.Join(root, ".trash", "beach-old.jpg"), base)
	return root
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetDirectory(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	s := NewScanner(root, nil)

	content, err := s.GetDirectory("album")
	if err != nil {
		t.Fatalf("GetDirectory failed: %v", err)
	}

	if content.Key != "dir:album" || content.Name != "album" || content.IsSearchResult() {
		t.Errorf("unexpected snapshot identity: key=%q name=%q", content.Key, content.Name)
	}

	gotMedia := names(content.Media, func(m MediaItem) string { return m.Name })
	if want := []string{"clip.mp4", "img1.jpg", "img10.jpg"}; !equalStrings(gotMedia, want) {
		t.Errorf("media = %v, want %v", gotMedia, want)
	}

	gotMarkers := names(content.MarkerFiles, func(m MarkerFile) string { return m.Name })
	if want := []string{".order_random.pg2conf", "readme.md"}; !equalStrings(gotMarkers, want) {
		t.Errorf("marker files = %v, want %v", gotMarkers, want)
	}

	if len(content.Directories) != 1 || content.Directories[0].Name != "beach" {
		t.Fatalf("directories = %+v, want [beach]", content.Directories)
	}
	if content.Directories[0].ItemCount != 2 {
		t.Errorf("beach ItemCount = %d, want 2", content.Directories[0].ItemCount)
	}

	for _, m := range content.Media {
		if m.Rating != nil || m.AssociateCount != nil {
			t.Errorf("%s should have no rating or associates without a metadata reader", m.Name)
		}
		if m.Name == "img10.jpg" {
			want := time.Date(2022, time.June, 1, 13, 0, 0, 0, time.UTC).UnixMilli()
			if m.CreationDate != want {
				t.Errorf("img10.jpg CreationDate = %d, want %d", m.CreationDate, want)
			}
		}
	}
}

func TestGetDirectoryRoot(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	s := NewScanner(root, nil)

	content, err := s.GetDirectory("")
	if err != nil {
		t.Fatalf("GetDirectory(root) failed: %v", err)
	}
	if content.Name != "Media" || content.Key != "dir:" {
		t.Errorf("root snapshot identity = %q/%q", content.Name, content.Key)
	}
	got := names(content.Directories, func(d DirectoryEntry) string { return d.Name })
	if want := []string{"album"}; !equalStrings(got, want) {
		t.Errorf("root directories = %v, want %v (hidden directories excluded)", got, want)
	}
}

func TestGetDirectoryRejectsEscapes(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	s := NewScanner(filepath.Join(root, "album"), nil)

	_, err := s.GetDirectory("../.trash")
	if !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("GetDirectory(../.trash) error = %v, want ErrOutsideRoot", err)
	}
}

func TestGetDirectoryNotADirectory(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	s := NewScanner(root, nil)

	if _, err := s.GetDirectory("album/img1.jpg"); err == nil {
		t.Error("GetDirectory on a file should fail")
	}
	if _, err := s.GetDirectory("missing"); err == nil {
		t.Error("GetDirectory on a missing path should fail")
	}
}

type fakeMetadata struct {
	byName map[string]Metadata
}

func (f *fakeMetadata) ReadMetadata(paths []string) map[string]Metadata {
	out := make(map[string]Metadata)
	for _, p := range paths {
		if md, ok := f.byName[filepath.Base(p)]; ok {
			out[p] = md
		}
	}
	return out
}

func TestGetDirectoryAppliesMetadata(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	taken := time.Date(2019, time.January, 5, 8, 30, 0, 0, time.UTC)
	s := NewScanner(root, &fakeMetadata{byName: map[string]Metadata{
		"img1.jpg": {CreationDate: taken, Rating: intPtr(5), AssociateCount: intPtr(3)},
	}})

	content, err := s.GetDirectory("album")
	if err != nil {
		t.Fatalf("GetDirectory failed: %v", err)
	}

	for _, m := range content.Media {
		switch m.Name {
		case "img1.jpg":
			if m.CreationDate != taken.UnixMilli() {
				t.Errorf("img1.jpg CreationDate = %d, want %d", m.CreationDate, taken.UnixMilli())
			}
			if m.RatingOrZero() != 5 || m.AssociateCountOrZero() != 3 {
				t.Errorf("img1.jpg rating/associates = %d/%d, want 5/3", m.RatingOrZero(), m.AssociateCountOrZero())
			}
		default:
			if m.Rating != nil {
				t.Errorf("%s unexpectedly has a rating", m.Name)
			}
		}
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	root := setupMediaDir(t)
	s := NewScanner(root, nil)

	content, err := s.Search("Beach")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !content.IsSearchResult() || content.Key != "search:beach" {
		t.Errorf("search snapshot identity: key=%q query=%q", content.Key, content.SearchQuery)
	}

	gotDirs := names(content.Directories, func(d DirectoryEntry) string { return d.Path })
	if want := []string{filepath.Join("album", "beach")}; !equalStrings(gotDirs, want) {
		t.Errorf("search directories = %v, want %v", gotDirs, want)
	}

	gotMedia := names(content.Media, func(m MediaItem) string { return m.Name })
	if want := []string{"Beach-party.png"}; !equalStrings(gotMedia, want) {
		t.Errorf("search media = %v, want %v (hidden trees skipped)", gotMedia, want)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	s := NewScanner(t.TempDir(), nil)
	if _, err := s.Search("   "); err == nil {
		t.Error("Search with a blank query should fail")
	}
}

func TestWatchEmitsOnChange(t *testing.T) {
	root := setupMediaDir(t)
	s := NewScanner(root, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *DirectoryContent, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "album", func(c *DirectoryContent) { updates <- c })
	}()

	// Give the watcher time to register before changing the directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(root, "album", "new.jpg"), time.Now())

	select {
	case c := <-updates:
		found := false
		for _, m := range c.Media {
			if m.Name == "new.jpg" {
				found = true
			}
		}
		if !found {
			t.Errorf("rescan after create does not contain new.jpg: %+v", c.Media)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher rescan")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchInvalidPath(t *testing.T) {
	t.Parallel()

	s := NewScanner(t.TempDir(), nil)
	err := s.Watch(context.Background(), "missing", func(*DirectoryContent) {})
	if err == nil {
		t.Error("Watch on a missing directory should fail")
	}
}
