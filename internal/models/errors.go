package models

import "errors"

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// ErrMissingStandings is returned by the scoring engine when either side
// lacks the mandatory standings record. It is the only structural error
// the engine reports; missing optional signals never fail a call.
var ErrMissingStandings = errors.New("standings record is required for both sides")
