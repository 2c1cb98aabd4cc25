package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: a uniqueness condition failed at write time
// - ErrUnavailable: store temporarily unreachable
// - ErrIndexUnavailable: the owner-identity lookup index specifically is down;
//   callers degrade to partial results instead of failing
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("unavailable")
	ErrIndexUnavailable = errors.New("index unavailable")
)
