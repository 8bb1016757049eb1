/*
Package qsim is a dense state-vector simulator for small quantum circuits.

States and gates are immutable values holding 2^n amplitudes and 2^n × 2^n
matrices, indexed big-endian with the first qubit as the most significant
bit. BuildOracle turns a classical function into its permutation gate, a
Simulator measures states with a seeded random source, and the algorithms of
Deutsch, Bernstein-Vazirani, Simon, Shor, Grover and Bennett run on top.

A Simulator is single-threaded. Repeated independent trials go through a Pool,
which hands every job attempt its own deterministically seeded Simulator.
*/
package qsim
