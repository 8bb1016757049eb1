package qsim

import "time"

// Config holds the settings shared by a Pool and the simulators it creates.
type Config struct {
	// Workers is the number of goroutines running trials.
	Workers int
	// SchedulingTimeout bounds how long Schedule waits for queue space.
	SchedulingTimeout time.Duration
	// Tolerance is handed to every job's Simulator.
	Tolerance float64
	// Seed is the base from which every job and attempt seed is derived.
	Seed uint64
	// MaxAttempts is the default number of attempts per job.
	MaxAttempts int
	// ResultTTL is how long finished results stay in the result space.
	ResultTTL time.Duration
}

func NewConfig() *Config {
	return &Config{
		Workers:           4,
		SchedulingTimeout: 10 * time.Second,
		Tolerance:         DefaultTolerance,
		Seed:              1,
		MaxAttempts:       1,
		ResultTTL:         time.Minute,
	}
}
