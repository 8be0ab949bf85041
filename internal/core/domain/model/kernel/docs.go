// Package kernel provides the shared domain primitives used across the
// coffee shop model: UUID identifiers for aggregates and the Money value
// object for all pricing arithmetic.
//
// Both types are immutable value objects whose zero values are invalid;
// they must be created through their constructor functions, which enforce
// the domain invariants (Money is non-negative and carries exactly two
// decimal places, half-up rounded).
package kernel
