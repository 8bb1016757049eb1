package qsim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestPool(seed uint64) *Pool {
	config := NewConfig()
	config.Seed = seed
	config.Workers = 3
	return NewPool(context.Background(), config)
}

func TestPool(t *testing.T) {
	Convey("Given a new pool", t, func() {
		pool := newTestPool(7)

		Reset(func() {
			pool.Close()
		})

		Convey("When scheduling a simple job", func() {
			value := <-pool.Schedule("test-job", func(sim *Simulator) (any, error) {
				return "success", nil
			})

			So(value.Error, ShouldBeNil)
			So(value.Value, ShouldEqual, "success")
			So(value.ID, ShouldEqual, "test-job")
		})

		Convey("When scheduling without an id", func() {
			value := <-pool.Schedule("", func(sim *Simulator) (any, error) {
				return 1, nil
			})

			So(value.ID, ShouldNotBeEmpty)
			So(value.Value, ShouldEqual, 1)
		})

		Convey("When scheduling a nil trial", func() {
			value := <-pool.Schedule("nil-job", nil)
			So(errors.Is(value.Error, ErrInvalidPrecondition), ShouldBeTrue)
		})

		Convey("When scheduling a job with retries", func() {
			var attempts atomic.Int32
			value := <-pool.Schedule("retry-job", func(sim *Simulator) (any, error) {
				if attempts.Add(1) < 3 {
					return nil, errors.New("temporary error")
				}
				return "success after retry", nil
			}, WithRetry(3, &ExponentialBackoff{Initial: time.Millisecond}))

			So(value.Error, ShouldBeNil)
			So(value.Value, ShouldEqual, "success after retry")
			So(value.Attempts, ShouldEqual, 3)
		})

		Convey("When a circuit breaker opens", func() {
			failing := func(sim *Simulator) (any, error) {
				return nil, errors.New("failure")
			}
			opt := WithCircuitBreaker("test-circuit", 2, time.Minute)

			<-pool.Schedule("circuit-1", failing, opt)
			<-pool.Schedule("circuit-2", failing, opt)
			value := <-pool.Schedule("circuit-3", failing, opt)

			So(value.Error, ShouldNotBeNil)
			So(value.Error.Error(), ShouldContainSubstring, "is open")
			So(value.Attempts, ShouldEqual, 0)
		})

		Convey("Metrics should count every job", func() {
			for i := 0; i < 5; i++ {
				<-pool.Schedule(fmt.Sprintf("metrics-%d", i), func(sim *Simulator) (any, error) {
					return nil, nil
				})
			}

			exported := pool.Metrics().ExportMetrics()
			So(exported["worker_count"], ShouldEqual, 3)
			So(exported["job_count"], ShouldEqual, int64(5))
			So(exported["successes"], ShouldEqual, int64(5))
			So(exported["success_rate"], ShouldEqual, 1.0)
		})
	})
}

func TestPoolDeterminism(t *testing.T) {
	Convey("Given two pools with the same seed", t, func() {
		first := newTestPool(11)
		second := newTestPool(11)

		Reset(func() {
			first.Close()
			second.Close()
		})

		draw := func(sim *Simulator) (any, error) {
			return sim.Source().Float64(), nil
		}

		Convey("The n-th job should see the same random stream", func() {
			for i := 0; i < 4; i++ {
				a := <-first.Schedule("", draw)
				b := <-second.Schedule("", draw)
				So(a.Seed, ShouldEqual, b.Seed)
				So(a.Value, ShouldEqual, b.Value)
			}
		})

		Convey("WithSeed should pin the stream", func() {
			a := <-first.Schedule("", draw, WithSeed(3))
			b := <-second.Schedule("", draw)
			c := <-second.Schedule("", draw, WithSeed(3))

			So(a.Value, ShouldEqual, c.Value)
			So(a.Value, ShouldNotEqual, b.Value)
		})
	})
}

func TestPoolClose(t *testing.T) {
	Convey("Given a closed pool", t, func() {
		pool := newTestPool(1)
		pool.Close()

		Convey("Scheduling should fail immediately", func() {
			value := <-pool.Schedule("late", func(sim *Simulator) (any, error) {
				return nil, nil
			})
			So(errors.Is(value.Error, context.Canceled), ShouldBeTrue)
		})

		Convey("Closing twice should be harmless", func() {
			pool.Close()
		})
	})
}

func TestPoolCloseWhileScheduling(t *testing.T) {
	Convey("Given jobs scheduled while the pool closes", t, func() {
		pool := newTestPool(2)

		channels := make(chan chan Result, 200)
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					channels <- pool.Schedule("", func(sim *Simulator) (any, error) {
						return sim.Coin(), nil
					})
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
		close(channels)

		Convey("Every channel should still resolve", func() {
			unresolved := 0
			for ch := range channels {
				select {
				case <-ch:
				case <-time.After(2 * time.Second):
					unresolved++
				}
			}
			So(unresolved, ShouldEqual, 0)
		})
	})
}

func TestPoolRun(t *testing.T) {
	Convey("Given a pool running experiments", t, func() {
		pool := newTestPool(5)

		Reset(func() {
			pool.Close()
		})

		Convey("Results should come back in trial order", func() {
			results, err := pool.Run(Experiment{
				Name:   "coins",
				Trials: 6,
				Trial: func(sim *Simulator) (any, error) {
					return sim.Coin(), nil
				},
			})

			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 6)
			for i, r := range results {
				So(r.Error, ShouldBeNil)
				So(strings.HasPrefix(r.ID, "coins-"), ShouldBeTrue)
				So(strings.HasSuffix(r.ID, fmt.Sprintf("/%d", i)), ShouldBeTrue)
			}
		})

		Convey("A malformed experiment should be rejected", func() {
			_, err := pool.Run(Experiment{Name: "empty"})
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})

		Convey("MaxFailures should stop a failing experiment", func() {
			results, err := pool.Run(Experiment{
				Name:        "broken",
				Trials:      20,
				MaxFailures: 2,
				Trial: func(sim *Simulator) (any, error) {
					return nil, ErrNoSolution
				},
			})

			So(err, ShouldBeNil)
			rejected := 0
			for _, r := range results {
				So(r.Error, ShouldNotBeNil)
				if strings.Contains(r.Error.Error(), "is open") {
					rejected++
				}
			}
			So(rejected, ShouldBeGreaterThan, 0)
		})

		Convey("BennettExperiment should reproduce the protocol frequencies", func() {
			results, err := pool.Run(BennettExperiment(8000, 4))
			So(err, ShouldBeNil)

			tally := MergeBennett(results)
			So(tally.Rounds, ShouldEqual, 8000)
			So(tally.FalseSuccess, ShouldEqual, 0)

			ts, _, tf, ff := tally.Frequencies()
			So(ts, ShouldAlmostEqual, 0.25, 0.03)
			So(tf, ShouldAlmostEqual, 0.5, 0.03)
			So(ff, ShouldAlmostEqual, 0.25, 0.03)
		})

		Convey("BennettExperiment should run every round when the split is uneven", func() {
			results, err := pool.Run(BennettExperiment(10, 3))
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 3)
			So(MergeBennett(results).Rounds, ShouldEqual, 10)

			rounds := []int{}
			for _, r := range results {
				rounds = append(rounds, r.Value.(BennettTally).Rounds)
			}
			So(rounds, ShouldResemble, []int{4, 3, 3})

			results, err = pool.Run(BennettExperiment(2, 5))
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(MergeBennett(results).Rounds, ShouldEqual, 2)
		})

		Convey("PeriodExperiment should find the order of 2 mod 5", func() {
			f, err := PowerModFunction(5, 2, 5)
			So(err, ShouldBeNil)
			gate, err := BuildOracle(5, 5, f)
			So(err, ShouldBeNil)

			results, err := pool.Run(PeriodExperiment(5, 2, 5, gate, 2, 10, 3))
			So(err, ShouldBeNil)
			for _, r := range results {
				So(r.Error, ShouldBeNil)
				So(r.Value, ShouldEqual, 4)
			}
		})
	})
}
