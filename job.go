package qsim

import "time"

// TrialFunc is one unit of work. The Simulator it receives belongs to this
// attempt alone.
type TrialFunc func(sim *Simulator) (any, error)

// Job represents a trial waiting to run
type Job struct {
	ID            string
	Seq           uint64
	Fn            TrialFunc
	Seed          uint64
	RetryPolicy   *RetryPolicy
	CircuitID     string
	CircuitConfig *CircuitBreakerConfig
	TTL           time.Duration
	Attempt       int
	LastError     error
	StartTime     time.Time
}

// JobOption is a function type for configuring jobs
type JobOption func(*Job)

// CircuitBreakerConfig struct
type CircuitBreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
	HalfOpenMax  int
}

// WithTTL configures how long the job's result is kept
func WithTTL(ttl time.Duration) JobOption {
	return func(j *Job) {
		j.TTL = ttl
	}
}

// WithSeed pins the job's seed instead of deriving it from the pool seed
func WithSeed(seed uint64) JobOption {
	return func(j *Job) {
		j.Seed = seed
	}
}

// attemptSeed is the seed of the Simulator handed to the given attempt.
func (j *Job) attemptSeed() uint64 {
	return deriveSeed(j.Seed, uint64(j.Attempt))
}
