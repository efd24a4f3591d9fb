package gallery

// Recompute triggers reported to Observer.
const (
	TriggerContent  = "content"
	TriggerSorting  = "sorting"
	TriggerGrouping = "grouping"
)

// Override operations reported to Observer.
const (
	OverrideGet    = "get"
	OverrideSet    = "set"
	OverrideRemove = "remove"
)

// Observer is notified about recomputations and override cache activity.
// It lets metrics be recorded without this package depending on them.
type Observer interface {
	// ObserveRecompute is called after a grouped view was derived.
	ObserveRecompute(trigger string, durationSeconds float64, mediaCount, groupCount int)
	// ObserveOverride is called for every override cache access. Status is
	// "hit" or "miss" for gets and "ok" otherwise.
	ObserveOverride(operation, status string)
}

type noopObserver struct{}

func (noopObserver) ObserveRecompute(string, float64, int, int) {}
func (noopObserver) ObserveOverride(string, string)             {}
