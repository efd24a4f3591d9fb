package observable

import (
	"slices"
	"sync"
	"testing"
)

func TestValueSubscribeDeliversCurrent(t *testing.T) {
	t.Parallel()

	v := NewValue(3)
	var got []int
	cancel := v.Subscribe(func(n int) { got = append(got, n) })
	defer cancel()

	if !slices.Equal(got, []int{3}) {
		t.Fatalf("Subscribe delivered %v, want [3]", got)
	}

	v.Set(4)
	v.Set(4)
	v.Set(5)
	if !slices.Equal(got, []int{3, 4, 4, 5}) {
		t.Errorf("got %v, want [3 4 4 5]", got)
	}
	if v.Get() != 5 {
		t.Errorf("Get() = %d, want 5", v.Get())
	}
}

func TestValueCancel(t *testing.T) {
	t.Parallel()

	v := NewValue("a")
	var got []string
	cancel := v.Subscribe(func(s string) { got = append(got, s) })
	v.Set("b")
	cancel()
	cancel()
	v.Set("c")

	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
	if v.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", v.Subscribers())
	}
}

func TestValueNotifiesInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	v := NewValue(0)
	var order []string
	c1 := v.Subscribe(func(int) { order = append(order, "first") })
	c2 := v.Subscribe(func(int) { order = append(order, "second") })
	defer c1()
	defer c2()

	order = nil
	v.Set(1)
	if !slices.Equal(order, []string{"first", "second"}) {
		t.Errorf("order = %v", order)
	}
}

func TestValueCallbackMaySetOtherCells(t *testing.T) {
	t.Parallel()

	src := NewValue(1)
	dst := NewValue(0)
	cancel := src.Subscribe(func(n int) { dst.Set(n * 10) })
	defer cancel()

	src.Set(2)
	if dst.Get() != 20 {
		t.Errorf("dst = %d, want 20", dst.Get())
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	v := NewValue(2)
	var got []int
	cancel := Map[int, int](v, func(n int) int { return n * n }).Subscribe(func(n int) { got = append(got, n) })
	defer cancel()

	v.Set(3)
	if !slices.Equal(got, []int{4, 9}) {
		t.Errorf("got %v, want [4 9]", got)
	}
}

func TestValueConcurrentSet(t *testing.T) {
	t.Parallel()

	v := NewValue(0)
	var mu sync.Mutex
	count := 0
	cancel := v.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Set(i)
		}()
	}
	wg.Wait()

	if count != 51 {
		t.Errorf("callback ran %d times, want 51", count)
	}
}
