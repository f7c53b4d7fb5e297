package models

// MailboxDiff is the shaped set of mutations that advances the mirror from
// one sync token to the next. Created and Updated carry full mailbox
// objects (resolved by the reconciler); Destroyed carries server ids only.
type MailboxDiff struct {
	Created   []Mailbox
	Updated   []Mailbox
	Destroyed []string
}

// Empty reports whether the diff carries no mutations at all.
func (d MailboxDiff) Empty() bool {
	return len(d.Created) == 0 && len(d.Updated) == 0 && len(d.Destroyed) == 0
}

// MailboxChanges is the raw changes-since-token result as reported by the
// remote store: id sets only, plus the token the sets advance to.
type MailboxChanges struct {
	// NewState is the token the mirror reflects once the change sets are
	// applied.
	NewState string

	// HasMore is true when the remote store truncated the change sets;
	// another changes-since call from NewState continues the stream.
	HasMore bool

	// CreatedIDs, UpdatedIDs and DestroyedIDs are disjoint id sets in
	// protocol response order (no hierarchy ordering is implied).
	CreatedIDs   []string
	UpdatedIDs   []string
	DestroyedIDs []string

	// UpdatedPropertiesKnown is true when the remote store named the
	// changed properties and at least one of them is mirrored locally.
	// When false the reconciler skips the updated set for this pass.
	UpdatedPropertiesKnown bool
}
