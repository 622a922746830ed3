package input

import "sort"

// Action is a named input event with any number of subscribers.
type Action[T any] struct {
	Name string

	handlers map[int]func(T)
	next     int
}

// Subscribe registers fn and returns the func that removes it. Removing twice
// is harmless.
func (a *Action[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	if a.handlers == nil {
		a.handlers = map[int]func(T){}
	}
	a.next++
	id := a.next
	a.handlers[id] = fn
	return func() {
		delete(a.handlers, id)
	}
}

// Perform delivers v to every subscriber in subscription order. Handlers
// removed by an earlier handler in the same call are skipped.
func (a *Action[T]) Perform(v T) {
	if len(a.handlers) == 0 {
		return
	}
	ids := make([]int, 0, len(a.handlers))
	for id := range a.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := a.handlers[id]; ok {
			fn(v)
		}
	}
}

// Subscribers returns the number of live handlers.
func (a *Action[T]) Subscribers() int {
	return len(a.handlers)
}
