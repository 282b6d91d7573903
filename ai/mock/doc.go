// Package mock provides deterministic test doubles for the ai interfaces.
//
// The embedder produces stable vectors derived from a hash of the input
// text, so similarity comparisons behave consistently across test runs
// without any network dependency. Behavior can be overridden per test via
// function fields.
package mock
