package gallery

import (
	"sync"
	"time"

	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/observable"
	"gallery-sorter/internal/sorting"
)

// OverrideCache stores per-directory sorting overrides keyed by
// DirectoryContent.Key. Implementations handle their own failures; a failed
// lookup reports no override and a failed write reports false.
type OverrideCache interface {
	GetSorting(key string) (mediatypes.SortingMethod, bool)
	SetSorting(key string, method mediatypes.SortingMethod) bool
	RemoveSorting(key string) bool
}

// Service is the sorting orchestrator of one gallery view.
type Service struct {
	sorter   *sorting.Sorter
	resolver *sorting.Resolver
	cache    OverrideCache
	observer Observer

	sorting  *observable.Value[mediatypes.SortingMethod]
	grouping *observable.Value[mediatypes.SortingMethod]

	mu     sync.Mutex // guards active and serializes sorter use
	active *media.DirectoryContent
}

// Option configures a Service.
type Option func(*Service)

// WithObserver sets the observer notified about recomputations.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithGrouping sets the initial grouping method.
func WithGrouping(method mediatypes.SortingMethod) Option {
	return func(s *Service) {
		s.grouping = observable.NewValue(method)
	}
}

// NewService creates a Service. The initial sorting method is the resolver's
// default for no content; the initial grouping method is date-ascending
// unless WithGrouping says otherwise.
func NewService(sorter *sorting.Sorter, resolver *sorting.Resolver, cache OverrideCache, opts ...Option) *Service {
	s := &Service{
		sorter:   sorter,
		resolver: resolver,
		cache:    cache,
		observer: noopObserver{},
		sorting:  observable.NewValue(resolver.DefaultSorting(nil)),
		grouping: observable.NewValue(mediatypes.SortByDateAsc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sorting returns the current sorting method cell.
func (s *Service) Sorting() observable.Observable[mediatypes.SortingMethod] {
	return s.sorting
}

// Grouping returns the current grouping method cell.
func (s *Service) Grouping() observable.Observable[mediatypes.SortingMethod] {
	return s.grouping
}

// CurrentSorting returns the current sorting method.
func (s *Service) CurrentSorting() mediatypes.SortingMethod {
	return s.sorting.Get()
}

// CurrentGrouping returns the current grouping method.
func (s *Service) CurrentGrouping() mediatypes.SortingMethod {
	return s.grouping.Get()
}

// SetSorting changes the sorting method. When a snapshot is active, an
// override is stored if method differs from the snapshot's default and any
// stored override is removed otherwise.
func (s *Service) SetSorting(method mediatypes.SortingMethod) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active != nil {
		if method == s.resolver.DefaultSorting(active) {
			ok := s.cache.RemoveSorting(active.Key)
			s.observer.ObserveOverride(OverrideRemove, status(ok))
			if ok {
				logging.Debug("Sorting override removed for %s", active.Key)
			}
		} else {
			ok := s.cache.SetSorting(active.Key, method)
			s.observer.ObserveOverride(OverrideSet, status(ok))
			if ok {
				logging.Debug("Sorting override for %s set to %s", active.Key, method)
			}
		}
	}
	s.sorting.Set(method)
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// SetGrouping changes the grouping method. Grouping is never persisted.
func (s *Service) SetGrouping(method mediatypes.SortingMethod) {
	s.grouping.Set(method)
}

// adopt makes content the active snapshot and switches the sorting method to
// its stored override or, failing that, its default.
func (s *Service) adopt(content *media.DirectoryContent) {
	s.mu.Lock()
	s.active = content
	s.mu.Unlock()

	if content == nil {
		return
	}

	method, ok := s.cache.GetSorting(content.Key)
	if ok {
		s.observer.ObserveOverride(OverrideGet, "hit")
		logging.Debug("Using sorting override %s for %s", method, content.Key)
	} else {
		s.observer.ObserveOverride(OverrideGet, "miss")
		method = s.resolver.DefaultSorting(content)
	}
	s.sorting.Set(method)
}

func (s *Service) compute(trigger string, content *media.DirectoryContent, sortBy, groupBy mediatypes.SortingMethod) *media.GroupedDirectoryContent {
	if content == nil {
		return nil
	}

	start := time.Now()
	s.mu.Lock()
	out := s.sorter.Apply(content, sortBy, groupBy)
	s.mu.Unlock()
	elapsed := time.Since(start)

	s.observer.ObserveRecompute(trigger, elapsed.Seconds(), len(content.Media), len(out.MediaGroups))
	logging.Debug("Recomputed %s on %s change: sort=%s group=%s groups=%d (%v)",
		content.Key, trigger, sortBy, groupBy, len(out.MediaGroups), elapsed)
	return out
}

// ApplySorting derives grouped views from content. Each subscription tracks
// the latest content, sorting and grouping and emits a new view whenever any
// of them changes, once all three are known. A nil snapshot emits nil.
//
// Every snapshot is adopted (see SetSorting) before its view is computed, so
// the first view of a directory already uses its override or default.
func (s *Service) ApplySorting(content observable.Observable[*media.DirectoryContent]) observable.Observable[*media.GroupedDirectoryContent] {
	return observable.Func[*media.GroupedDirectoryContent](func(emit func(*media.GroupedDirectoryContent)) func() {
		p := &pipeline{svc: s, emit: emit}

		cancelGrouping := s.grouping.Subscribe(p.onGrouping)
		cancelSorting := s.sorting.Subscribe(p.onSorting)
		cancelContent := content.Subscribe(p.onContent)

		return func() {
			cancelContent()
			cancelSorting()
			cancelGrouping()
		}
	})
}

// pipeline is the combine-latest state of one ApplySorting subscription.
type pipeline struct {
	svc  *Service
	emit func(*media.GroupedDirectoryContent)

	mu          sync.Mutex
	content     *media.DirectoryContent
	sorting     mediatypes.SortingMethod
	grouping    mediatypes.SortingMethod
	hasContent  bool
	hasSorting  bool
	hasGrouping bool
	adopting    bool
}

func (p *pipeline) onGrouping(m mediatypes.SortingMethod) {
	p.mu.Lock()
	p.grouping, p.hasGrouping = m, true
	p.mu.Unlock()
	p.recompute(TriggerGrouping)
}

func (p *pipeline) onSorting(m mediatypes.SortingMethod) {
	p.mu.Lock()
	p.sorting, p.hasSorting = m, true
	adopting := p.adopting
	p.mu.Unlock()

	// Adoption is followed by a content recompute.
	if !adopting {
		p.recompute(TriggerSorting)
	}
}

func (p *pipeline) onContent(c *media.DirectoryContent) {
	p.mu.Lock()
	p.adopting = true
	p.mu.Unlock()

	p.svc.adopt(c)

	p.mu.Lock()
	p.adopting = false
	p.content, p.hasContent = c, true
	p.mu.Unlock()
	p.recompute(TriggerContent)
}

func (p *pipeline) recompute(trigger string) {
	p.mu.Lock()
	ready := p.hasContent && p.hasSorting && p.hasGrouping
	content, sortBy, groupBy := p.content, p.sorting, p.grouping
	p.mu.Unlock()

	if !ready {
		return
	}
	p.emit(p.svc.compute(trigger, content, sortBy, groupBy))
}
