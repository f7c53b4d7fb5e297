package models

// Mailbox is one node of the mirrored folder hierarchy. The identity is
// ServerID, an opaque identifier assigned by the remote store; the mirror
// never generates ids of its own.
type Mailbox struct {
	// ServerID is the remote store's stable identifier for this folder.
	ServerID string `json:"id"`

	// Name is the display name. Never empty; the mirror schema enforces it.
	Name string `json:"name"`

	// Role is an optional classification tag such as "inbox" or "trash".
	Role *string `json:"role"`

	// ParentID references the ServerID of the parent folder; nil means the
	// folder sits at the root of the hierarchy.
	ParentID *string `json:"parentId"`

	// SortOrder orders siblings for display. Lower values come first;
	// ties break on Name.
	SortOrder int `json:"sortOrder"`
}

// IsRoot reports whether the mailbox has no parent.
func (m Mailbox) IsRoot() bool {
	return m.ParentID == nil || *m.ParentID == ""
}

// OrderParentFirst returns the mailboxes reordered so that every parent
// precedes all of its children. Mailboxes whose parent is not part of the
// batch are treated as batch roots (their parent is expected to already
// exist in the mirror). Input order is preserved among unrelated siblings.
//
// Nodes left over by a reference cycle are appended in input order; the
// store's foreign-key enforcement rejects them, which is the correct
// surfacing point for remote data that is structurally broken.
func OrderParentFirst(boxes []Mailbox) []Mailbox {
	if len(boxes) <= 1 {
		return boxes
	}

	inBatch := make(map[string]bool, len(boxes))
	for _, m := range boxes {
		inBatch[m.ServerID] = true
	}

	ordered := make([]Mailbox, 0, len(boxes))
	placed := make(map[string]bool, len(boxes))
	remaining := boxes

	for len(remaining) > 0 {
		var next []Mailbox
		progressed := false

		for _, m := range remaining {
			ready := m.IsRoot() || !inBatch[*m.ParentID] || placed[*m.ParentID]
			if ready {
				ordered = append(ordered, m)
				placed[m.ServerID] = true
				progressed = true
			} else {
				next = append(next, m)
			}
		}

		if !progressed {
			// cycle: hand the rest over unordered
			return append(ordered, next...)
		}
		remaining = next
	}

	return ordered
}
