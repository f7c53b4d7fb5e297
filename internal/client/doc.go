// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

// Package client implements the interactive application runtime.
//
// It wires the terminal UI, the sync reconciler, and the background sync
// job into a single process lifecycle.
package client
