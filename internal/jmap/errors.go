// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

package jmap

import "errors"

// Sentinel errors returned by the protocol client. Callers match them with
// errors.Is to distinguish network failures (safe to retry) from protocol
// violations (fatal for the pass).
var (
	// ErrTransport is returned when the remote store cannot be reached or
	// answers with a non-success HTTP status. The sync pass aborts without
	// touching the mirror; the caller may retry.
	ErrTransport = errors.New("transport failure")

	// ErrProtocol is returned when a response is malformed or has an
	// unexpected shape. Treated as fatal for the pass; the mirror is
	// untouched.
	ErrProtocol = errors.New("protocol violation")

	// ErrNotConnected is returned when a method call is attempted before
	// Connect has produced a session descriptor.
	ErrNotConnected = errors.New("client is not connected")
)
