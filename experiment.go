package qsim

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
Experiment is a batch of independent trials, each run as its own job on a
Pool. Every trial runs Trial, unless TrialAt is set, in which case trial i
runs TrialAt(i). When MaxFailures is set, the trials share a circuit breaker
that stops the batch once that many attempts in a row have failed.
*/
type Experiment struct {
	Name        string
	Trials      int
	Trial       TrialFunc
	TrialAt     func(i int) TrialFunc
	Options     []JobOption
	MaxFailures int
}

func (exp Experiment) trial(i int) TrialFunc {
	if exp.TrialAt != nil {
		return exp.TrialAt(i)
	}
	return exp.Trial
}

/*
Run schedules every trial of exp and collects the results in trial order.
The error is non-nil only when the experiment itself is malformed; trial
failures are reported per Result.
*/
func (p *Pool) Run(exp Experiment) ([]Result, error) {
	if exp.Trials < 1 || (exp.Trial == nil && exp.TrialAt == nil) {
		return nil, preconditionError("Pool.Run", "experiment %q with %d trials", exp.Name, exp.Trials)
	}

	name := exp.Name
	if name == "" {
		name = "experiment"
	}
	prefix := fmt.Sprintf("%s-%s", name, uuid.NewString())

	opts := exp.Options
	if exp.MaxFailures > 0 {
		opts = append(append([]JobOption(nil), opts...), WithCircuitBreaker(prefix, exp.MaxFailures, time.Minute))
	}

	start := time.Now()
	channels := make([]chan Result, exp.Trials)
	for i := range channels {
		channels[i] = p.Schedule(fmt.Sprintf("%s/%d", prefix, i), exp.trial(i), opts...)
	}

	results := make([]Result, exp.Trials)
	failures := 0
	for i, ch := range channels {
		results[i] = <-ch
		if results[i].Error != nil {
			failures++
		}
	}

	errnie.Info("Pool.Run - %s: %d trials, %d failed, %v", name, exp.Trials, failures, time.Since(start))
	return results, nil
}

/*
BennettExperiment splits rounds over at most trials trials, each returning the
BennettTally of its share. The first rounds % trials trials run one round
more, so the shares add up to rounds. MergeBennett combines the results.
*/
func BennettExperiment(rounds, trials int) Experiment {
	trials = max(min(trials, rounds), 1)
	share, extra := rounds/trials, rounds%trials
	return Experiment{
		Name:   "bennett",
		Trials: trials,
		TrialAt: func(i int) TrialFunc {
			n := share
			if i < extra {
				n++
			}
			return func(sim *Simulator) (any, error) {
				return sim.BennettStatistics(n)
			}
		},
	}
}

// MergeBennett sums the tallies of a BennettExperiment, skipping failed trials.
func MergeBennett(results []Result) BennettTally {
	var total BennettTally
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		if tally, ok := r.Value.(BennettTally); ok {
			total.Merge(tally)
		}
	}
	return total
}

/*
PeriodExperiment runs FindPeriod in independent trials on a shared,
prebuilt oracle gate. A trial that exhausts its attempts with ErrNoSolution
is retried up to retries times with a fresh seed; any other error stops it.
*/
func PeriodExperiment(n, k, m int, f Gate, trials, attempts, retries int) Experiment {
	return Experiment{
		Name:   fmt.Sprintf("period-%d-mod-%d", k, m),
		Trials: trials,
		Trial: func(sim *Simulator) (any, error) {
			return sim.FindPeriod(n, k, m, f, attempts)
		},
		Options: []JobOption{
			WithRetry(max(retries, 1), &ExponentialBackoff{}),
			WithRetryFilter(func(err error) bool {
				return errors.Is(err, ErrNoSolution)
			}),
		},
	}
}
