package qsim

import (
	"context"
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

// Worker runs trials pulled from the pool's queue
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.pool.jobs:
			w.pool.space.Store(w.processJob(ctx, job))
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job Job) Result {
	result := Result{
		ID:   job.ID,
		Seed: job.Seed,
		TTL:  job.TTL,
	}

	breaker := w.pool.getCircuitBreaker(job)
	if breaker != nil && !breaker.Allow() {
		errnie.Info("Worker %d - job %s rejected by circuit breaker %s", w.id, job.ID, job.CircuitID)
		result.Error = fmt.Errorf("qsim: job %s: circuit breaker %s is open", job.ID, job.CircuitID)
		w.pool.metrics.recordJobExecution(job.StartTime, 0, false)
		return result
	}

	value, err := w.executeWithRetries(ctx, &job, breaker)
	w.pool.metrics.recordJobExecution(job.StartTime, job.Attempt, err == nil)
	w.pool.observe()

	result.Value = value
	result.Error = err
	result.Attempts = job.Attempt
	return result
}

func (w *Worker) executeWithRetries(ctx context.Context, job *Job, breaker *CircuitBreaker) (any, error) {
	policy := job.RetryPolicy
	if policy == nil {
		policy = &RetryPolicy{MaxAttempts: 1}
	}
	attempts := max(policy.MaxAttempts, 1)

	for job.Attempt = 0; job.Attempt < attempts; {
		if job.Attempt > 0 && policy.Strategy != nil {
			delay := policy.Strategy.NextDelay(job.Attempt)
			errnie.Info("Worker %d - job %s retrying attempt %d after %v", w.id, job.ID, job.Attempt+1, delay)
			if err := sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("qsim: job %s: %w", job.ID, err)
			}
		}

		sim := NewSimulator(
			WithSeed(job.attemptSeed()),
			WithTolerance(w.pool.config.Tolerance),
		)
		job.Attempt++

		value, err := job.Fn(sim)
		if err == nil {
			if breaker != nil {
				breaker.RecordSuccess()
			}
			return value, nil
		}

		job.LastError = err
		errnie.Info("Worker %d - job %s attempt %d failed: %v", w.id, job.ID, job.Attempt, err)
		if breaker != nil {
			breaker.RecordFailure()
		}

		if policy.Filter != nil && !policy.Filter(err) {
			break
		}
	}

	return nil, fmt.Errorf("qsim: job %s: all %d attempts failed: %w", job.ID, job.Attempt, job.LastError)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
