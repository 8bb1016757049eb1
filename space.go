package qsim

import (
	"sync"
	"time"
)

// Result is the outcome of a job
type Result struct {
	ID        string
	Value     any
	Error     error
	Attempts  int
	Seed      uint64
	CreatedAt time.Time
	TTL       time.Duration
}

// ResultSpace handles result storage and delivery to waiters
type ResultSpace struct {
	mu      sync.Mutex
	values  map[string]Result
	waiting map[string][]chan Result
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func newResultSpace(cleanupInterval time.Duration) *ResultSpace {
	rs := &ResultSpace{
		values:  make(map[string]Result),
		waiting: make(map[string][]chan Result),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		rs.wg.Add(1)
		go func() {
			defer rs.wg.Done()
			rs.cleanup(cleanupInterval)
		}()
	}

	return rs
}

// Store stores a result and hands it to everyone waiting on its id
func (rs *ResultSpace) Store(result Result) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	rs.values[result.ID] = result

	for _, ch := range rs.waiting[result.ID] {
		ch <- result
		close(ch)
	}
	delete(rs.waiting, result.ID)
}

// Await returns a channel that will receive the result when it's available
func (rs *ResultSpace) Await(id string) chan Result {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ch := make(chan Result, 1)
	if result, ok := rs.values[id]; ok {
		ch <- result
		close(ch)
		return ch
	}

	rs.waiting[id] = append(rs.waiting[id], ch)
	return ch
}

// Len returns the number of stored results
func (rs *ResultSpace) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.values)
}

func (rs *ResultSpace) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rs.done:
			return
		case <-ticker.C:
			rs.cleanupExpired(time.Now())
		}
	}
}

func (rs *ResultSpace) cleanupExpired(now time.Time) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for id, result := range rs.values {
		if result.TTL > 0 && now.Sub(result.CreatedAt) > result.TTL {
			delete(rs.values, id)
		}
	}
}

// Close stops the cleanup goroutine
func (rs *ResultSpace) Close() {
	rs.once.Do(func() {
		close(rs.done)
	})
	rs.wg.Wait()
}
