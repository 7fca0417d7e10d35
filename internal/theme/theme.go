// Package theme provides the shared dark-mode flag and a read-only observer
// for it. Whoever owns the flag may change it at any time; observers only
// follow.
package theme

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrReadOnly is returned by Flip for flags that cannot be written.
var ErrReadOnly = errors.New("theme: flag is read-only")

// Flag is a boolean the host toggles elsewhere.
type Flag interface {
	Dark() bool
	// Subscribe registers fn for every change. fn must not call the returned
	// unsubscribe function; once unsubscribe returns, fn is not running and
	// will not be called again.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Switch is a Flag its owner can write.
type Switch interface {
	Flag
	Set(dark bool) error
}

// Flip inverts a writable flag.
func Flip(f Flag) error {
	s, ok := f.(Switch)
	if !ok {
		return ErrReadOnly
	}
	return s.Set(!s.Dark())
}

// Parse reads "dark" or "light", ignoring case and surrounding space.
func Parse(s string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

// Name is the inverse of Parse.
func Name(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// subscribers delivers changes while holding mu, which is what lets
// unsubscribe guarantee no callback is in flight when it returns.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(bool)
}

func (s *subscribers) add(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(bool))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

func (s *subscribers) notify(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.fns {
		fn(dark)
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// Toggle is an in-memory Switch.
type Toggle struct {
	dark atomic.Bool
	subs subscribers
}

func NewToggle(dark bool) *Toggle {
	t := &Toggle{}
	t.dark.Store(dark)
	return t
}

func (t *Toggle) Dark() bool { return t.dark.Load() }

func (t *Toggle) Subscribe(fn func(bool)) func() { return t.subs.add(fn) }

// Set stores dark and notifies subscribers if it changed.
func (t *Toggle) Set(dark bool) error {
	if t.dark.Swap(dark) != dark {
		t.subs.notify(dark)
	}
	return nil
}

// Subscribers reports how many callbacks are registered.
func (t *Toggle) Subscribers() int { return t.subs.len() }

// Observer mirrors a Flag. It is sampled once when created and then follows
// change notifications until Stop.
type Observer struct {
	dark        atomic.Bool
	unsubscribe func()
	stopped     atomic.Bool
}

// Observe starts following flag. onChange, if non-nil, runs on whatever
// goroutine the flag notifies from.
func Observe(flag Flag, onChange func(dark bool)) *Observer {
	o := &Observer{}
	o.unsubscribe = flag.Subscribe(func(dark bool) {
		if o.stopped.Load() {
			return
		}
		if o.dark.Swap(dark) != dark && onChange != nil {
			onChange(dark)
		}
	})
	o.dark.Store(flag.Dark())
	return o
}

// Dark is the last observed value.
func (o *Observer) Dark() bool { return o.dark.Load() }

// Stop unsubscribes. After Stop returns the observed value no longer changes.
func (o *Observer) Stop() {
	if o.stopped.Swap(true) {
		return
	}
	o.unsubscribe()
}
