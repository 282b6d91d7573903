// Package keys provides round-robin rotation over a fixed pool of outbound
// API credentials.
//
// A single Rotator is constructed at process start from a line-delimited key
// file and passed by reference to every component that makes calls to the
// embedding or generation provider. The rotation cursor is the only piece of
// process-wide mutable state in the system and is advanced atomically, so
// concurrent requests each receive a distinct, correctly-advanced credential.
package keys
