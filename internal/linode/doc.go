// Package linode provides the core primitives for batched integration of
// elementwise-scaled linear feedback systems dx/dt = F·x·g:
//
//   - [State]: batch of scalar state elements, mutated in place
//   - [Matrix]: square row-major coefficient matrix
//   - [Method]: closed enumeration of stepping methods (Euler, RK4)
//   - [StepFunc]: pure per-element increment function
//
// The stepping functions deliberately use the scale input in place of the
// evolving state on the right-hand side. This is part of the coupling
// contract, not an approximation artifact, and callers rely on it.
//
// # Thread Safety
//
// States are plain slices and carry no synchronization. Concurrent calls
// that share a State must be serialized by the caller.
package linode
