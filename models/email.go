package models

import "time"

// EmailAddress is a single address from a message header.
type EmailAddress struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EmailSummary is the listing view of one message in a folder. Messages are
// fetched live from the remote store and are not mirrored locally.
type EmailSummary struct {
	ServerID string         `json:"id"`
	Subject  string         `json:"subject"`
	From     []EmailAddress `json:"from"`
	SentAt   time.Time      `json:"sentAt"`
	BlobID   string         `json:"blobId"`
}

// FromLine renders the From addresses for display, preferring names over
// bare addresses.
func (e EmailSummary) FromLine() string {
	if len(e.From) == 0 {
		return ""
	}
	first := e.From[0]
	if first.Name != "" {
		return first.Name
	}
	return first.Email
}
