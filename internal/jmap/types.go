package jmap

import (
	"encoding/json"
	"fmt"

	"github.com/okatev/mailmirror/models"
)

// Capabilities requested on every API call (RFC 8620, RFC 8621).
const (
	capCore = "urn:ietf:params:jmap:core"
	capMail = "urn:ietf:params:jmap:mail"
)

// Method names used by the client.
const (
	methodMailboxGet     = "Mailbox/get"
	methodMailboxChanges = "Mailbox/changes"
	methodEmailQuery     = "Email/query"
	methodEmailGet       = "Email/get"
)

// mirroredProperties are the mailbox properties the local mirror persists.
// An updated set whose property list does not touch any of these is
// irrelevant to the mirror (typically counter-only changes).
var mirroredProperties = map[string]bool{
	"name":      true,
	"role":      true,
	"parentId":  true,
	"sortOrder": true,
}

// invocation is one JMAP method call: a [name, arguments, callId] triple on
// the wire.
type invocation struct {
	name   string
	args   any
	callID string
}

func (inv invocation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{inv.name, inv.args, inv.callID})
}

type apiRequest struct {
	Using       []string     `json:"using"`
	MethodCalls []invocation `json:"methodCalls"`
}

type apiResponse struct {
	MethodResponses []json.RawMessage `json:"methodResponses"`
}

// methodError is the argument payload of an invocation whose name is
// "error" (RFC 8620 §3.6.2).
type methodError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// decodeInvocation validates the [name, args, callId] shape of one method
// response and unmarshals its arguments into args. A server-reported method
// error or any shape mismatch surfaces as ErrProtocol.
func decodeInvocation(raw json.RawMessage, wantName string, args any) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("%w: method response is not an array: %w", ErrProtocol, err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("%w: method response has %d elements, want 3", ErrProtocol, len(parts))
	}

	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return fmt.Errorf("%w: method response name: %w", ErrProtocol, err)
	}

	if name == "error" {
		var me methodError
		if err := json.Unmarshal(parts[1], &me); err != nil {
			return fmt.Errorf("%w: undecodable method error", ErrProtocol)
		}
		return fmt.Errorf("%w: server method error %q: %s", ErrProtocol, me.Type, me.Description)
	}
	if name != wantName {
		return fmt.Errorf("%w: got method %q, want %q", ErrProtocol, name, wantName)
	}

	if err := json.Unmarshal(parts[1], args); err != nil {
		return fmt.Errorf("%w: decode %s arguments: %w", ErrProtocol, wantName, err)
	}
	return nil
}

// sessionDocument is the subset of the session resource the client needs.
type sessionDocument struct {
	PrimaryAccounts map[string]string `json:"primaryAccounts"`
	APIURL          string            `json:"apiUrl"`
	DownloadURL     string            `json:"downloadUrl"`
}

type mailboxGetArgs struct {
	AccountID string    `json:"accountId"`
	IDs       *[]string `json:"ids"` // nil marshals to null = all mailboxes
}

type mailboxGetResult struct {
	AccountID string           `json:"accountId"`
	State     string           `json:"state"`
	List      []models.Mailbox `json:"list"`
	NotFound  []string         `json:"notFound"`
}

type mailboxChangesArgs struct {
	AccountID  string `json:"accountId"`
	SinceState string `json:"sinceState"`
}

type mailboxChangesResult struct {
	AccountID         string    `json:"accountId"`
	OldState          string    `json:"oldState"`
	NewState          string    `json:"newState"`
	HasMoreChanges    bool      `json:"hasMoreChanges"`
	Created           []string  `json:"created"`
	Updated           []string  `json:"updated"`
	Destroyed         []string  `json:"destroyed"`
	UpdatedProperties *[]string `json:"updatedProperties"`
}

type emailQueryFilter struct {
	InMailbox string `json:"inMailbox"`
}

type emailQuerySort struct {
	Property    string `json:"property"`
	IsAscending bool   `json:"isAscending"`
}

type emailQueryArgs struct {
	AccountID       string           `json:"accountId"`
	Filter          emailQueryFilter `json:"filter"`
	Sort            []emailQuerySort `json:"sort"`
	CollapseThreads bool             `json:"collapseThreads"`
	Position        int              `json:"position"`
	Limit           int              `json:"limit"`
}

// resultReference lets one method call consume the output of an earlier
// call in the same request (RFC 8620 §3.7).
type resultReference struct {
	ResultOf string `json:"resultOf"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

type emailGetArgs struct {
	AccountID  string           `json:"accountId"`
	BackRefIDs *resultReference `json:"#ids,omitempty"`
	Properties []string         `json:"properties"`
}

type emailGetResult struct {
	AccountID string                `json:"accountId"`
	State     string                `json:"state"`
	List      []models.EmailSummary `json:"list"`
}

// validateMailboxes enforces the boundary invariants on objects the mirror
// is about to trust: non-empty id and name on every entry.
func validateMailboxes(boxes []models.Mailbox) error {
	for _, m := range boxes {
		if m.ServerID == "" {
			return fmt.Errorf("%w: mailbox with empty id", ErrProtocol)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: mailbox %s has empty name", ErrProtocol, m.ServerID)
		}
	}
	return nil
}

// relevantToMirror reports whether any of the changed properties named by
// the server is one the mirror persists.
func relevantToMirror(props []string) bool {
	for _, p := range props {
		if mirroredProperties[p] {
			return true
		}
	}
	return false
}
