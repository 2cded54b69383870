package viewstate

import "sync"

// Observable is a value holder that pushes each change to its subscribers.
// Subscriber channels hold one element and keep only the latest value.
type Observable[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
	closed bool
}

// NewObservable creates an Observable holding initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial, subs: map[int]chan T{}}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe returns a channel that first yields the current value and then the
// latest value after each change. cancel detaches and closes the channel.
func (o *Observable[T]) Subscribe() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan T, 1)
	if o.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- o.value

	id := o.nextID
	o.nextID++
	o.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if sub, ok := o.subs[id]; ok {
				delete(o.subs, id)
				close(sub)
			}
		})
	}
}

// update applies fn to the current value and publishes the result. It reports
// false without calling fn once the observable is closed.
func (o *Observable[T]) update(fn func(T) T) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	o.value = fn(o.value)
	for _, ch := range o.subs {
		select {
		case ch <- o.value:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- o.value
		}
	}
	return true
}

func (o *Observable[T]) set(value T) bool {
	return o.update(func(T) T { return value })
}

// Close closes every subscriber channel. Later writes are ignored.
func (o *Observable[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
}

// Closed reports whether Close has been called.
func (o *Observable[T]) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}
