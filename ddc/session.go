package ddc

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCooldown is the minimum time between two writes to the same
// physical monitor.
const DefaultCooldown = 5 * time.Second

// Clock is the time source used for the write cooldown.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Session owns the per-handle state (write cooldown and observed maximum
// brightness) on top of an API. The maps are mutex guarded, but a handle must
// still only be driven from one goroutine at a time: the cooldown is checked
// and re-armed in separate steps.
type Session struct {
	api      API
	clock    Clock
	cooldown time.Duration
	logger   *log.Logger

	mu            sync.Mutex
	readyAt       map[Handle]time.Time
	maxBrightness map[Handle]uint32
}

type Option func(*Session)

// WithCooldown overrides DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(s *Session) { s.cooldown = d }
}

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func NewSession(api API, opts ...Option) *Session {
	s := &Session{
		api:           api,
		clock:         systemClock{},
		cooldown:      DefaultCooldown,
		logger:        log.New(io.Discard),
		readyAt:       make(map[Handle]time.Time),
		maxBrightness: make(map[Handle]uint32),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// waitReady blocks until h may receive the next write and re-arms its
// cooldown.
func (s *Session) waitReady(h Handle) {
	s.mu.Lock()
	readyAt, ok := s.readyAt[h]
	s.mu.Unlock()

	if ok {
		if wait := readyAt.Sub(s.clock.Now()); wait > 0 {
			s.logger.Debug("waiting for vcp cooldown", "handle", h, "wait", wait)
			s.clock.Sleep(wait)
		}
	}

	s.mu.Lock()
	s.readyAt[h] = s.clock.Now().Add(s.cooldown)
	s.mu.Unlock()
}

func (s *Session) cachedMaxBrightness(h Handle) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.maxBrightness[h]
	return v, ok
}

func (s *Session) setMaxBrightness(h Handle, v uint32) {
	s.mu.Lock()
	s.maxBrightness[h] = v
	s.mu.Unlock()
}

func (s *Session) forget(h Handle) {
	s.mu.Lock()
	delete(s.readyAt, h)
	delete(s.maxBrightness, h)
	s.mu.Unlock()
}
