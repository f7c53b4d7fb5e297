// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

// Package mail extracts displayable text from raw RFC 5322 messages.
package mail

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"
)

// ExtractText parses a raw message and returns its body as plain text. The
// text/plain part is preferred; HTML-only messages are converted with
// html2text. Messages without any body yield an empty string.
func ExtractText(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse message: %w", err)
	}

	if text := strings.TrimSpace(env.Text); text != "" {
		return text, nil
	}

	if env.HTML != "" {
		text, convErr := html2text.FromString(env.HTML, html2text.Options{TextOnly: false})
		if convErr != nil {
			return "", fmt.Errorf("convert html body: %w", convErr)
		}
		return strings.TrimSpace(text), nil
	}

	return "", nil
}

// Subject returns the decoded Subject header of a raw message.
func Subject(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse message: %w", err)
	}
	return env.GetHeader("Subject"), nil
}
