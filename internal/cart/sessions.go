package cart

import (
	"sync"
	"time"
)

// sweepInterval is how often idle sessions are checked for expiry.
const sweepInterval = time.Minute

type session struct {
	mu   sync.Mutex
	cart *Cart

	// lastSeen is guarded by Sessions.mu, not the session's own lock, so
	// the sweep and request handlers never touch it under different locks.
	lastSeen time.Time
}

// Sessions maps browsing-session IDs to their carts. Carts are created
// lazily on first use and dropped after sitting idle for the configured TTL.
// Access to a session's cart is serialized through With, so the cart itself
// stays lock-free.
type Sessions struct {
	mu    sync.RWMutex
	carts map[string]*session
	ttl   time.Duration

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// NewSessions creates a session registry whose carts expire after sitting
// idle for ttl. Close must be called to stop the background sweep.
func NewSessions(ttl time.Duration) *Sessions {
	s := &Sessions{
		carts:     make(map[string]*session),
		ttl:       ttl,
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

func (s *Sessions) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireIdle(time.Now().Add(-s.ttl))
		case <-s.stopSweep:
			return
		}
	}
}

// expireIdle drops every session last used before the cutoff.
func (s *Sessions) expireIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.carts {
		if sess.lastSeen.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// get returns the session for id, creating it on first use, and marks it as
// just used. Touching lastSeen here, under the registry lock, keeps the
// session out of expireIdle's reach for the request that is about to run.
func (s *Sessions) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.carts[id]
	if !ok {
		sess = &session{cart: New()}
		s.carts[id] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

// With runs fn against the cart belonging to the given session, creating an
// empty cart on first use. fn runs under the session's lock, so every cart
// operation is atomic from the caller's perspective.
func (s *Sessions) With(id string, fn func(c *Cart) error) error {
	sess := s.get(id)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.cart)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Close stops the background sweep and waits for it to finish.
func (s *Sessions) Close() error {
	close(s.stopSweep)
	s.wg.Wait()
	return nil
}
