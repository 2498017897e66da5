// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// ApplyOutcome tags the result of applying one queued change remotely.
type ApplyOutcome int

const (
	// OutcomeSuccess means the server accepted the change.
	OutcomeSuccess ApplyOutcome = iota
	// OutcomeRecoverable means the change may succeed later (network, 5xx, 429).
	OutcomeRecoverable
	// OutcomePermanent means the change will never succeed (validation, ownership).
	OutcomePermanent
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRecoverable:
		return "recoverable"
	case OutcomePermanent:
		return "permanent"
	}
	return "unknown"
}

// ApplyResult is returned from the remote-apply boundary so callers branch on
// Outcome instead of sniffing error types.
type ApplyResult struct {
	Outcome ApplyOutcome

	// Value is the server-confirmed value on success. Empty means the server
	// did not echo one back and the desired value is taken as confirmed.
	Value json.RawMessage

	// Err carries the cause for recoverable and permanent outcomes.
	Err error
}

// Succeeded builds a success result.
func Succeeded(value json.RawMessage) ApplyResult {
	return ApplyResult{Outcome: OutcomeSuccess, Value: value}
}

// Recoverable builds a recoverable failure.
func Recoverable(err error) ApplyResult {
	return ApplyResult{Outcome: OutcomeRecoverable, Err: err}
}

// Permanent builds a permanent failure.
func Permanent(err error) ApplyResult {
	return ApplyResult{Outcome: OutcomePermanent, Err: err}
}
