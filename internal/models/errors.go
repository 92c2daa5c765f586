package models

import (
	"errors"
	"fmt"
)

// Error taxonomy for the engine pipeline. Tool entry points convert any
// error wrapping one of these sentinels into the standard error envelope;
// nothing below the tool layer retries or returns partial results.
var (
	// ErrNotFound means the tag is absent from the corpus.
	ErrNotFound = errors.New("scenario not found")

	// ErrParseFailure means the tag was located but no valid scenario
	// could be extracted around it.
	ErrParseFailure = errors.New("parse failure")

	// ErrIOFailure means a corpus file could not be read.
	ErrIOFailure = errors.New("io failure")

	// ErrCollaborator means an external provider (search, index) failed.
	ErrCollaborator = errors.New("collaborator failure")
)

// ParseFailure subclasses.
var (
	ErrTagNotFound         = fmt.Errorf("%w: tag not present in file", ErrParseFailure)
	ErrNoEnclosingScenario = fmt.Errorf("%w: no enclosing scenario", ErrParseFailure)
	ErrMalformedTable      = fmt.Errorf("%w: malformed examples table", ErrParseFailure)
)
