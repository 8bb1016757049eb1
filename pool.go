package qsim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
Pool runs independent trials on a fixed set of workers. Every attempt of
every job gets its own Simulator, seeded from the pool seed, the job's
sequence number and the attempt number, so the outcome of a job does not
depend on which worker ran it or on what ran before it.
*/
type Pool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	jobs       chan Job
	space      *ResultSpace
	metrics    *Metrics
	breakers   map[string]*CircuitBreaker
	breakersMu sync.Mutex
	regulators []Regulator
	regMu      sync.RWMutex
	config     *Config
	seq        atomic.Uint64
	closeOnce  sync.Once

	// closeMu is held for reading while a job is enqueued and for writing
	// while Close marks the pool closed, so no job lands after the drain.
	closeMu sync.RWMutex
	closed  bool
}

// NewPool starts config.Workers workers. A nil config uses NewConfig.
func NewPool(ctx context.Context, config *Config) *Pool {
	if config == nil {
		config = NewConfig()
	}
	workers := max(config.Workers, 1)

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(chan Job, workers*10),
		space:    newResultSpace(config.ResultTTL),
		metrics:  NewMetrics(),
		breakers: make(map[string]*CircuitBreaker),
		config:   config,
	}

	for i := 0; i < workers; i++ {
		p.startWorker(i)
	}
	return p
}

func (p *Pool) startWorker(id int) {
	worker := &Worker{id: id, pool: p}

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

/*
Schedule queues fn and returns a channel that receives its Result once. An
empty id is replaced with a random one. When the queue stays full for longer
than the scheduling timeout, or the job's circuit breaker is open, the channel
carries the error immediately.
*/
func (p *Pool) Schedule(id string, fn TrialFunc, opts ...JobOption) chan Result {
	if id == "" {
		id = uuid.NewString()
	}

	seq := p.seq.Add(1)
	job := Job{
		ID:   id,
		Seq:  seq,
		Fn:   fn,
		Seed: deriveSeed(p.config.Seed, seq),
		RetryPolicy: &RetryPolicy{
			MaxAttempts: max(p.config.MaxAttempts, 1),
			Strategy:    &ExponentialBackoff{},
		},
		TTL:       p.config.ResultTTL,
		StartTime: time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	if fn == nil {
		return failed(job, fmt.Errorf("qsim: job %s: nil trial: %w", id, ErrInvalidPrecondition))
	}

	if breaker := p.getCircuitBreaker(job); breaker != nil && !breaker.Allow() {
		return failed(job, fmt.Errorf("qsim: job %s: circuit breaker %s is open", id, job.CircuitID))
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return failed(job, fmt.Errorf("qsim: job %s: pool closed: %w", id, context.Canceled))
	}

	ctx, cancel := context.WithTimeout(p.ctx, p.getSchedulingTimeout())
	defer cancel()

	ch := p.space.Await(id)

	if err := p.admit(ctx); err != nil {
		p.schedulingFailed(job, err)
		return ch
	}

	select {
	case p.jobs <- job:
		return ch
	case <-ctx.Done():
		p.schedulingFailed(job, ctx.Err())
		return ch
	}
}

func (p *Pool) schedulingFailed(job Job, err error) {
	p.metrics.recordSchedulingFailure()
	errnie.Info("Pool - scheduling job %s failed: %v", job.ID, err)
	p.space.Store(Result{
		ID:    job.ID,
		Error: fmt.Errorf("qsim: job %s: scheduling timeout: %w", job.ID, err),
		Seed:  job.Seed,
		TTL:   job.TTL,
	})
}

// Regulate adds regulators that every subsequent Schedule call must pass.
func (p *Pool) Regulate(regulators ...Regulator) {
	p.regMu.Lock()
	defer p.regMu.Unlock()
	p.regulators = append(p.regulators, regulators...)
}

// admit waits until no regulator limits intake.
func (p *Pool) admit(ctx context.Context) error {
	p.regMu.RLock()
	regulators := p.regulators
	p.regMu.RUnlock()

	for _, r := range regulators {
		for r.Limit() {
			r.Renormalize()
			if err := sleep(ctx, admitInterval); err != nil {
				return err
			}
		}
	}
	return nil
}

// observe feeds the metrics to every regulator.
func (p *Pool) observe() {
	p.regMu.RLock()
	defer p.regMu.RUnlock()
	for _, r := range p.regulators {
		r.Observe(p.metrics)
	}
}

const admitInterval = 5 * time.Millisecond

func failed(job Job, err error) chan Result {
	ch := make(chan Result, 1)
	ch <- Result{
		ID:        job.ID,
		Error:     err,
		Seed:      job.Seed,
		CreatedAt: time.Now(),
		TTL:       job.TTL,
	}
	close(ch)
	return ch
}

// Metrics returns the pool's metrics
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

// Config returns the pool's configuration
func (p *Pool) Config() *Config {
	return p.config
}

func (p *Pool) getCircuitBreaker(job Job) *CircuitBreaker {
	if job.CircuitID == "" || job.CircuitConfig == nil {
		return nil
	}

	p.breakersMu.Lock()
	defer p.breakersMu.Unlock()

	breaker, exists := p.breakers[job.CircuitID]
	if !exists {
		breaker = NewCircuitBreaker(*job.CircuitConfig)
		p.breakers[job.CircuitID] = breaker
	}
	return breaker
}

func (p *Pool) getSchedulingTimeout() time.Duration {
	if p.config.SchedulingTimeout > 0 {
		return p.config.SchedulingTimeout
	}
	return 5 * time.Second
}

/*
Close stops the workers and fails every job still in the queue, so no channel
returned by Schedule is left waiting. Jobs already running finish first.
*/
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.closeOnce.Do(func() {
		errnie.Info("Pool - closing")
		p.cancel()

		p.closeMu.Lock()
		p.closed = true
		p.closeMu.Unlock()

		p.wg.Wait()

		for {
			select {
			case job := <-p.jobs:
				p.space.Store(Result{
					ID:    job.ID,
					Error: fmt.Errorf("qsim: job %s: pool closed: %w", job.ID, context.Canceled),
					Seed:  job.Seed,
					TTL:   job.TTL,
				})
			default:
				p.space.Close()
				errnie.Info("Pool - closed")
				return
			}
		}
	})
}
