// Package solver is the entry point of the batched linear feedback
// integrator. It validates a call, resolves the method name and the
// structural kernel variant, and launches the parallel step loop.
//
//	x, err := solver.Solve(F, x0, g, 0.01, 1000, "RK4")
//
// The call is synchronous: every element completes every step before Solve
// returns, and on error the state vector is untouched. Solve mutates x0 in
// place and returns it; no new state is allocated.
package solver
