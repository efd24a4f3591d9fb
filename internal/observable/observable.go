package observable

import "sync"

// Observable is a source of values that can be subscribed to.
type Observable[T any] interface {
	// Subscribe registers fn and returns a function that removes it.
	// Calling the returned function more than once is safe.
	Subscribe(fn func(T)) (cancel func())
}

// Func adapts a subscribe function to Observable.
type Func[T any] func(fn func(T)) (cancel func())

// Subscribe implements Observable.
func (f Func[T]) Subscribe(fn func(T)) func() {
	return f(fn)
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Value is a cell holding the current value of type T.
type Value[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []subscriber[T]
	nextID uint64
}

// NewValue returns a cell holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and notifies subscribers in subscription order.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Subscribe implements Observable. fn is called with the current value
// before Subscribe returns.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

// Map returns an Observable emitting f of every value of src.
func Map[T, R any](src Observable[T], f func(T) R) Observable[R] {
	return Func[R](func(fn func(R)) func() {
		return src.Subscribe(func(v T) { fn(f(v)) })
	})
}
