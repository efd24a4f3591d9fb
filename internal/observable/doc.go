// Package observable provides current-value cells with synchronous,
// push-based subscriptions.
//
// A [Value] always holds a value. Subscribers receive the current value
// immediately on Subscribe and every later value in the order Set was
// called. Callbacks run on the goroutine that called Set, outside the
// cell's lock, so a callback may Set other cells.
package observable
