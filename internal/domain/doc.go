// Package domain contains the core business entities, value objects, and
// domain errors of the LingoFlow API: users, catalog words, per-user
// vocabulary entries with their SM-2 scheduling state, and the append-only
// review records produced by grading events.
//
// Entities validate themselves via their Validate methods and are created
// through New* constructors that establish the documented invariants.
// The package has no dependencies on storage, transport, or other
// infrastructure concerns.
package domain
