package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager owns in-memory booking sessions. Every mutation of one session
// goes through Apply, which holds that session's lock for the duration of
// the reduce, so transitions are strictly ordered per session.
type Manager struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*entry

	done chan struct{}
	once sync.Once
}

type entry struct {
	mu      sync.Mutex
	state   State
	slug    string
	touched time.Time
}

func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		ttl:      ttl,
		sessions: map[string]*entry{},
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Create validates the deep link against the catalog and stores the initial
// snapshot. The company slug is remembered so later requests can reload the
// same catalog.
func (m *Manager) Create(cat *catalog.Catalog, slug string, link DeepLink) (string, State) {
	id := uuid.NewString()
	st := NewState(cat, link)

	m.mu.Lock()
	m.sessions[id] = &entry{state: st, slug: slug, touched: time.Now()}
	m.mu.Unlock()

	return id, st
}

func (m *Manager) Get(id string) (State, string, error) {
	e := m.lookup(id)
	if e == nil {
		return State{}, "", ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()
	return e.state, e.slug, nil
}

// Apply runs one action through the reducer and returns the new snapshot.
func (m *Manager) Apply(id string, act Action) (State, error) {
	e := m.lookup(id)
	if e == nil {
		return State{}, ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Reduce(e.state, act)
	e.touched = time.Now()
	return e.state, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) lookup(id string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *Manager) sweep() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-t.C:
			m.mu.Lock()
			for id, e := range m.sessions {
				if now.Sub(e.touched) > m.ttl {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
