// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

// Package config assembles the mailmirror configuration from environment
// variables, command-line flags, and an optional JSON file.
//
// Sources are merged in priority order (environment, then flags, then the
// JSON file) and the result is validated before use. Core logic never reads
// the environment directly; everything it needs arrives through the
// [Config] struct resolved once at startup.
package config
