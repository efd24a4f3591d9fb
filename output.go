package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"golang.org/x/term"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// printer writes grouped views as text or JSON.
type printer struct {
	w      io.Writer
	format string
	now    func() time.Time
}

// newPrinter picks text when w is a terminal and format is empty.
func newPrinter(w io.Writer, format string) (*printer, error) {
	if format == "" {
		format = formatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = formatText
		}
	}
	switch format {
	case formatText, formatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &printer{w: w, format: format, now: time.Now}, nil
}

// jsonView is the JSON document printed for one view.
type jsonView struct {
	Sorting  mediatypes.SortingMethod       `json:"sorting"`
	Grouping mediatypes.SortingMethod       `json:"grouping"`
	View     *media.GroupedDirectoryContent `json:"view"`
}

// Print writes view. A nil view prints nothing.
func (p *printer) Print(view *media.GroupedDirectoryContent, sortBy, groupBy mediatypes.SortingMethod) error {
	if view == nil {
		return nil
	}
	if p.format == formatJSON {
		return writeJSON(p.w, jsonView{Sorting: sortBy, Grouping: groupBy, View: view})
	}
	return p.printText(view, sortBy, groupBy)
}

func (p *printer) printText(view *media.GroupedDirectoryContent, sortBy, groupBy mediatypes.SortingMethod) error {
	var b strings.Builder
	title := view.Path
	if view.SearchQuery != "" {
		title = fmt.Sprintf("search %q", view.SearchQuery)
	} else if title == "" {
		title = "/"
	}

	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "sorting: %s  grouping: %s  media: %s\n", sortBy, groupBy, humanize.Comma(int64(view.MediaCount())))

	if len(view.Directories) > 0 {
		b.WriteString("\nDirectories\n")
		for _, d := range view.Directories {
			fmt.Fprintf(&b, "  %-40s %6s items  %s\n", d.Name+"/", humanize.Comma(int64(d.ItemCount)), p.ago(time.UnixMilli(d.LastModified)))
		}
	}

	if len(view.MarkerFiles) > 0 {
		b.WriteString("\nMarker files\n")
		for _, f := range view.MarkerFiles {
			fmt.Fprintf(&b, "  %-40s %s\n", f.Name, p.ago(time.UnixMilli(f.LastModified)))
		}
	}

	for _, g := range view.MediaGroups {
		name := g.Name
		if name == "" {
			name = "All media"
		}
		fmt.Fprintf(&b, "\n[%s] %s\n", name, humanize.Comma(int64(len(g.Media))))
		for _, m := range g.Media {
			fmt.Fprintf(&b, "  %-40s %s%s\n", m.Name, p.ago(m.CreatedAt()), itemDetails(m))
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// ago renders t relative to now. The Unix epoch marks an unknown date.
func (p *printer) ago(t time.Time) string {
	if t.UnixMilli() == 0 {
		return "-"
	}
	return humanize.RelTime(t, p.now(), "ago", "from now")
}

// describeContent summarizes a snapshot for the log.
func describeContent(c *media.DirectoryContent) string {
	if c == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s: %s %s, %s %s", c.Key,
		humanize.Comma(int64(len(c.Media))), plural(len(c.Media), "item", "items"),
		humanize.Comma(int64(len(c.Directories))), plural(len(c.Directories), "directory", "directories"))
}

func itemDetails(m media.MediaItem) string {
	var parts []string
	if m.Rating != nil {
		parts = append(parts, fmt.Sprintf("rating %d", *m.Rating))
	}
	if m.AssociateCount != nil {
		parts = append(parts, humanize.Comma(int64(*m.AssociateCount))+" "+plural(*m.AssociateCount, "person", "people"))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// viewSink keeps the latest emitted view and signals that it changed.
type viewSink struct {
	mu      sync.Mutex
	latest  *media.GroupedDirectoryContent
	updated chan struct{}
}

func newViewSink() *viewSink {
	return &viewSink{updated: make(chan struct{}, 1)}
}

// Put records view as the latest one.
func (s *viewSink) Put(view *media.GroupedDirectoryContent) {
	s.mu.Lock()
	s.latest = view
	s.mu.Unlock()

	select {
	case s.updated <- struct{}{}:
	default:
	}
}

// Latest returns the most recent view.
func (s *viewSink) Latest() *media.GroupedDirectoryContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Updated receives after every Put that happened since the last receive.
func (s *viewSink) Updated() <-chan struct{} {
	return s.updated
}
