package httpclient

import "sync"

// LogoutBroadcaster fans the forced-logout notification out to subscribers.
// It is owned by the HTTP client layer so that a 401 can be announced without
// the transport knowing who manages session state. Dispatch is fire-and-forget
// and carries no arguments.
type LogoutBroadcaster struct {
	lock sync.Mutex
	subs map[int]func()
	next int
}

func NewLogoutBroadcaster() *LogoutBroadcaster {
	return &LogoutBroadcaster{subs: make(map[int]func())}
}

// Subscribe registers fn to be called on every dispatch and returns the
// function that removes the subscription.
func (b *LogoutBroadcaster) Subscribe(fn func()) (unsubscribe func()) {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.lock.Lock()
		defer b.lock.Unlock()
		delete(b.subs, id)
	}
}

// Dispatch notifies all current subscribers synchronously, in registration
// order not guaranteed. Subscribers must not block.
func (b *LogoutBroadcaster) Dispatch() {
	b.lock.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.lock.Unlock()

	for _, fn := range fns {
		fn()
	}
}
