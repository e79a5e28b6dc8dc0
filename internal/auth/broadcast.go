package auth

import "sync"

// UnauthenticatedBroadcast is the process-wide "session is gone" signal. The
// transport middleware and the API client publish to it when they see a 401;
// the application shell subscribes and decides what to do (in the storefront,
// send the user to the login view). Keeping the signal here means no layer
// below the shell ever performs navigation side effects.
type UnauthenticatedBroadcast struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func NewUnauthenticatedBroadcast() *UnauthenticatedBroadcast {
	return &UnauthenticatedBroadcast{}
}

// Subscribe returns a channel that receives one value per Notify. The channel
// is buffered; a subscriber that is not draining misses extra signals instead
// of blocking the publisher.
func (b *UnauthenticatedBroadcast) Subscribe() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan struct{}, 1)
	b.subs = append(b.subs, ch)

	return ch
}

// Notify fans the signal out to every subscriber without blocking.
func (b *UnauthenticatedBroadcast) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
