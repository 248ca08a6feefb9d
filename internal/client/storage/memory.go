package storage

import (
	"context"
	"sync"
)

// MemoryProfile is an in-process profile. Every MemoryStore opened on it
// sees the same data, like several views open on one browser profile.
type MemoryProfile struct {
	mu      sync.Mutex
	data    map[string][]byte
	subs    map[int]memorySub
	nextSub int
	writers int
}

type memorySub struct {
	subscription
	owner int
}

func NewMemoryProfile() *MemoryProfile {
	return &MemoryProfile{
		data: make(map[string][]byte),
		subs: make(map[int]memorySub),
	}
}

// Open returns a new instance on the profile.
func (p *MemoryProfile) Open() *MemoryStore {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writers++
	return &MemoryStore{profile: p, writer: p.writers}
}

// MemoryStore is one instance on a MemoryProfile. Change callbacks run
// synchronously on the writer's goroutine, after the write is visible.
type MemoryStore struct {
	profile *MemoryProfile
	writer  int

	mu     sync.Mutex
	closed bool
	owned  []int
}

var _ Profile = (*MemoryStore)(nil)

func (s *MemoryStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	p := s.profile
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.data[key]), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	return s.write(key, clone(value))
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	return s.write(key, nil)
}

func (s *MemoryStore) write(key string, value []byte) error {
	if s.isClosed() {
		return ErrClosed
	}
	p := s.profile
	p.mu.Lock()
	if value == nil {
		delete(p.data, key)
	} else {
		p.data[key] = value
	}
	var notify []ChangeFunc
	for _, sub := range p.subs {
		if sub.key == key && sub.owner != s.writer {
			notify = append(notify, sub.fn)
		}
	}
	p.mu.Unlock()

	for _, fn := range notify {
		fn(clone(value))
	}
	return nil
}

func (s *MemoryStore) OnExternalChange(key string, fn ChangeFunc) func() {
	p := s.profile
	p.mu.Lock()
	p.nextSub++
	subID := p.nextSub
	p.subs[subID] = memorySub{subscription: subscription{key: key, fn: fn}, owner: s.writer}
	p.mu.Unlock()

	s.mu.Lock()
	s.owned = append(s.owned, subID)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, subID)
			p.mu.Unlock()
		})
	}
}

// Close drops this instance's subscriptions. The profile's data survives.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	owned := s.owned
	s.owned = nil
	s.mu.Unlock()

	p := s.profile
	p.mu.Lock()
	for _, subID := range owned {
		delete(p.subs, subID)
	}
	p.mu.Unlock()
	return nil
}
