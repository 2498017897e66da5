// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrNetwork covers transport failures and request timeouts.
	ErrNetwork = errors.New("network error")
	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")

	// ErrValidation is returned for 400 and 422 responses.
	ErrValidation = errors.New("validation failed")
	// ErrOwnership is returned for 401 and 403 responses.
	ErrOwnership = errors.New("not allowed to modify resource")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned for 409 responses.
	ErrConflict = errors.New("conflict")
	// ErrUnexpectedStatus is returned for any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedChange is returned when a queued payload cannot be decoded
	// or targets an unknown collection.
	ErrMalformedChange = errors.New("malformed queued change")
)
