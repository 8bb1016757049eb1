package qsim

/*
Regulator throttles job intake on a Pool. Schedule asks every regulator
whether to Limit before a job is queued, and holds the job back (calling
Renormalize between checks) until all regulators agree or the scheduling
timeout runs out. Workers hand the pool's Metrics to Observe after every
finished job, so regulators can react to how trials are going.
*/
type Regulator interface {
	// Observe receives the pool metrics after each finished job.
	Observe(metrics *Metrics)

	// Limit reports whether the next job must wait.
	Limit() bool

	// Renormalize gives the regulator a chance to recover before the
	// next Limit check.
	Renormalize()
}
