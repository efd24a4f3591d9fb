package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/workers"

	"github.com/fsnotify/fsnotify"
	"github.com/karrick/godirwalk"
)

// ErrOutsideRoot is returned for paths that resolve outside the media directory.
var ErrOutsideRoot = errors.New("path is outside the media directory")

const (
	// watchDebounce coalesces bursts of filesystem events into one rescan.
	watchDebounce = 250 * time.Millisecond
	// maxCountWorkers caps concurrent sub-directory reads.
	maxCountWorkers = 8
)

// Scanner reads directory snapshots from the media directory.
type Scanner struct {
	mediaDir string
	meta     MetadataReader
	mu       sync.RWMutex
}

// NewScanner creates a new Scanner instance. meta may be nil, in which case
// creation dates fall back to file modification times and rating and
// associate counts stay unset.
func NewScanner(mediaDir string, meta MetadataReader) *Scanner {
	return &Scanner{
		mediaDir: mediaDir,
		meta:     meta,
	}
}

// GetDirectory returns the unsorted contents of a directory relative to the
// media directory.
func (s *Scanner) GetDirectory(relativePath string) (content *DirectoryContent, err error) {
	start := time.Now()
	defer func() {
		recordScan("get_directory", start, content, err)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	relativePath = normalizePath(relativePath)

	fullPath, err := s.validatePath(relativePath)
	if err != nil {
		return nil, err
	}

	dirents, err := godirwalk.ReadDirents(fullPath, nil)
	if err != nil {
		return nil, err
	}

	content = &DirectoryContent{
		Key:         DirectoryKey(relativePath),
		Path:        relativePath,
		Name:        directoryName(relativePath),
		Directories: []DirectoryEntry{},
		Media:       []MediaItem{},
		MarkerFiles: []MarkerFile{},
	}

	var mediaPaths, dirPaths []string
	for _, de := range dirents {
		name := de.Name()
		if strings.HasPrefix(name, ".") && !isMarkerName(name) {
			continue
		}
		entryFull := filepath.Join(fullPath, name)
		entryRel := joinRel(relativePath, name)

		info, statErr := os.Stat(entryFull)
		if statErr != nil {
			logging.Debug("Skipping %s: %v", entryFull, statErr)
			continue
		}

		if info.IsDir() {
			content.Directories = append(content.Directories, DirectoryEntry{
				Name:         name,
				Path:         entryRel,
				LastModified: info.ModTime().UnixMilli(),
			})
			dirPaths = append(dirPaths, entryFull)
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		switch mediatypes.GetFileType(ext) {
		case mediatypes.FileTypeImage, mediatypes.FileTypeVideo:
			content.Media = append(content.Media, MediaItem{
				Name:         name,
				Path:         entryRel,
				Type:         mediatypes.GetFileType(ext),
				CreationDate: info.ModTime().UnixMilli(),
			})
			mediaPaths = append(mediaPaths, entryFull)
		case mediatypes.FileTypeMarker:
			content.MarkerFiles = append(content.MarkerFiles, MarkerFile{
				Name:         name,
				Path:         entryRel,
				LastModified: info.ModTime().UnixMilli(),
			})
		}
	}

	countItems(content.Directories, dirPaths)
	s.applyMetadata(content.Media, mediaPaths)

	return content, nil
}

// Search walks the whole media directory and returns every directory and
// media item whose name contains query, case-insensitively. The result is a
// search snapshot: it has a SearchQuery and a search key.
func (s *Scanner) Search(query string) (content *DirectoryContent, err error) {
	start := time.Now()
	defer func() {
		recordScan("search", start, content, err)
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		err = errors.New("empty search query")
		return nil, err
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	root, err := filepath.Abs(s.mediaDir)
	if err != nil {
		return nil, err
	}

	content = &DirectoryContent{
		Key:         SearchKey(query),
		Name:        query,
		SearchQuery: query,
		Directories: []DirectoryEntry{},
		Media:       []MediaItem{},
		MarkerFiles: []MarkerFile{},
	}

	var mediaPaths, dirPaths []string
	err = godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if osPathname == root {
				return nil
			}
			name := de.Name()
			if strings.HasPrefix(name, ".") {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}
			if !strings.Contains(strings.ToLower(name), needle) {
				return nil
			}

			rel, relErr := filepath.Rel(root, osPathname)
			if relErr != nil {
				return relErr
			}
			info, statErr := os.Stat(osPathname)
			if statErr != nil {
				return nil
			}

			if de.IsDir() {
				content.Directories = append(content.Directories, DirectoryEntry{
					Name:         name,
					Path:         rel,
					LastModified: info.ModTime().UnixMilli(),
				})
				dirPaths = append(dirPaths, osPathname)
				return nil
			}

			ext := strings.ToLower(filepath.Ext(name))
			if mediatypes.IsMediaFile(ext) {
				content.Media = append(content.Media, MediaItem{
					Name:         name,
					Path:         rel,
					Type:         mediatypes.GetFileType(ext),
					CreationDate: info.ModTime().UnixMilli(),
				})
				mediaPaths = append(mediaPaths, osPathname)
			}
			return nil
		},
		ErrorCallback: func(osPathname string, walkErr error) godirwalk.ErrorAction {
			logging.Warn("Search skipped %s: %v", osPathname, walkErr)
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, err
	}

	countItems(content.Directories, dirPaths)
	s.applyMetadata(content.Media, mediaPaths)

	return content, nil
}

// Watch rescans relativePath whenever its entries change and passes every
// fresh snapshot to onChange. It blocks until ctx is cancelled.
func (s *Scanner) Watch(ctx context.Context, relativePath string, onChange func(*DirectoryContent)) error {
	relativePath = normalizePath(relativePath)
	fullPath, err := s.validatePath(relativePath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		watchError()
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Error("failed to close file watcher: %v", err)
		}
	}()

	if err := watcher.Add(fullPath); err != nil {
		watchError()
		return err
	}
	logging.Debug("Scanner watcher started for %s", fullPath)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantEvent(event) {
				continue
			}
			if o := observe(); o != nil {
				o.ObserveWatchEvent()
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			content, scanErr := s.GetDirectory(relativePath)
			if scanErr != nil {
				logging.Warn("Rescan of %s failed: %v", relativePath, scanErr)
				continue
			}
			onChange(content)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher error: %v", werr)
			watchError()
		}
	}
}

func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (s *Scanner) applyMetadata(items []MediaItem, fullPaths []string) {
	if s.meta == nil || len(fullPaths) == 0 {
		return
	}
	found := s.meta.ReadMetadata(fullPaths)
	for i := range items {
		md, ok := found[fullPaths[i]]
		if !ok {
			continue
		}
		if !md.CreationDate.IsZero() {
			items[i].CreationDate = md.CreationDate.UnixMilli()
		}
		items[i].Rating = md.Rating
		items[i].AssociateCount = md.AssociateCount
	}
}

func recordScan(operation string, start time.Time, content *DirectoryContent, err error) {
	o := observe()
	if o == nil {
		return
	}
	items := 0
	if content != nil {
		items = len(content.Directories) + len(content.Media)
	}
	o.ObserveScan(operation, time.Since(start).Seconds(), items, err)
}

func watchError() {
	if o := observe(); o != nil {
		o.ObserveWatchError()
	}
}

// normalizePath cleans and normalizes a relative path
func normalizePath(relativePath string) string {
	relativePath = filepath.Clean(relativePath)
	if relativePath == "." || relativePath == string(filepath.Separator) {
		relativePath = ""
	}
	return relativePath
}

// validatePath ensures the path is valid and within the media directory
func (s *Scanner) validatePath(relativePath string) (string, error) {
	fullPath := filepath.Join(s.mediaDir, relativePath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}

	absMediaDir, err := filepath.Abs(s.mediaDir)
	if err != nil {
		return "", err
	}
	if absPath != absMediaDir && !strings.HasPrefix(absPath, absMediaDir+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", os.ErrInvalid
	}

	return fullPath, nil
}

func joinRel(relativePath, name string) string {
	if relativePath == "" {
		return name
	}
	return filepath.Join(relativePath, name)
}

func directoryName(relativePath string) string {
	if relativePath == "" {
		return "Media"
	}
	return filepath.Base(relativePath)
}

func isMarkerName(name string) bool {
	return mediatypes.GetFileType(strings.ToLower(filepath.Ext(name))) == mediatypes.FileTypeMarker
}

// countItems fills in ItemCount of dirs, whose full paths are paths.
func countItems(dirs []DirectoryEntry, paths []string) {
	workers.Run(len(paths), workers.ForIO(maxCountWorkers), func(i int) {
		dirs[i].ItemCount = countDirItems(paths[i])
	})
}

func countDirItems(path string) int {
	names, err := godirwalk.ReadDirnames(path, nil)
	if err != nil {
		return 0
	}

	count := 0
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(path, name))
		if err != nil {
			continue
		}
		if info.IsDir() || mediatypes.IsMediaFile(strings.ToLower(filepath.Ext(name))) {
			count++
		}
	}
	return count
}
