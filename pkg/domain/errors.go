package domain

import "errors"

// ErrInvalidCandidateSet is returned when a random choice is requested over an
// empty set of candidates (or an empty integer range).
var ErrInvalidCandidateSet = errors.New("invalid candidate set")

// ErrRandomnessUnavailable is returned when the random source cannot produce a value.
// It is not retried.
var ErrRandomnessUnavailable = errors.New("randomness unavailable")

// ErrInvalidPolicy is returned when a grammar policy fails validation.
var ErrInvalidPolicy = errors.New("invalid grammar policy")

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// ErrMalformedTree is returned when a decoded tree violates operator arity.
var ErrMalformedTree = errors.New("malformed expression tree")

// ErrFixtureNotFound is returned when a fixture ID cannot be found in the corpus store.
var ErrFixtureNotFound = errors.New("fixture not found")
