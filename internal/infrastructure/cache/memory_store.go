package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/changerank-api/internal/application/derived"
)

var _ derived.Store = (*MemoryStore)(nil)

type entry struct {
	val       []byte
	expiresAt time.Time // cero = sin expiración
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore implementa derived.Store en un mapa protegido por RWMutex.
// Sirve para una sola instancia; el CLI no alcanza esta caché.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	interval  time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// MemoryOption configura el MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithCleanupInterval fija cada cuánto se purgan las entradas vencidas; 0 desactiva la purga.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.interval = d }
}

// NewMemoryStore crea el store y arranca la purga periódica.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:  make(map[string]entry),
		now:      time.Now,
		interval: 10 * time.Minute,
		stopChan: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.interval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.expired(s.now()) {
		return nil, false, nil
	}
	return e.val, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{val: val}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// Incr incrementa un contador decimal; una clave ausente o vencida parte de 0.
func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if e, ok := s.entries[key]; ok && !e.expired(s.now()) {
		v, err := strconv.ParseInt(string(e.val), 10, 64)
		if err != nil {
			return 0, err
		}
		n = v
	}
	n++
	s.entries[key] = entry{val: []byte(strconv.FormatInt(n, 10))}
	return n, nil
}

func (s *MemoryStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	return nil
}

// Len devuelve la cantidad de entradas (incluidas las vencidas aún no purgadas).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close detiene la purga. Se puede llamar más de una vez.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge()
		case <-s.stopChan:
			return
		}
	}
}

func (s *MemoryStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
		}
	}
}
