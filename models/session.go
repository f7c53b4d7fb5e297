// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

package models

// Session is the immutable descriptor produced by the protocol client's
// Connect step. All fields are resolved once, before any sync call; core
// logic never performs ambient lookups to obtain them.
type Session struct {
	// AccountID is the primary mail account id at the remote store.
	AccountID string

	// APIURL is the endpoint that accepts batched method calls.
	APIURL string

	// DownloadURL is the blob download template, e.g.
	// https://host/download/{accountId}/{blobId}/{name}?type={type}.
	DownloadURL string
}
