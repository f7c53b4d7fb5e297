package jmap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okatev/mailmirror/internal/logger"
)

const testAccountID = "acc-1"

// newSessionHandler serves the session document pointing the api and
// download URLs back at the same test server.
func newSessionHandler(t *testing.T, apiHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		doc := map[string]any{
			"primaryAccounts": map[string]string{capMail: testAccountID},
			"apiUrl":          srv.URL + "/api",
			"downloadUrl":     srv.URL + "/download/{accountId}/{blobId}/{name}?type={type}",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	if apiHandler != nil {
		mux.HandleFunc("/api", apiHandler)
	}

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newConnectedClient(t *testing.T, srv *httptest.Server) Client {
	t.Helper()

	c := NewClient(ClientConfig{SessionURL: srv.URL + "/session", Token: "test-token"}, logger.Nop())
	_, err := c.Connect(context.Background())
	require.NoError(t, err)
	return c
}

func methodResponseBody(t *testing.T, responses ...[]any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{"methodResponses": responses})
	require.NoError(t, err)
	return body
}

// ── Connect ─────────────────────────────────────────────────────────────────

func TestConnect_ResolvesSession(t *testing.T) {
	srv := newSessionHandler(t, nil)

	c := NewClient(ClientConfig{SessionURL: srv.URL + "/session", Token: "test-token"}, logger.Nop())
	session, err := c.Connect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testAccountID, session.AccountID)
	assert.Equal(t, srv.URL+"/api", session.APIURL)
	assert.Contains(t, session.DownloadURL, "{blobId}")
}

func TestConnect_IsIdempotent(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"primaryAccounts": map[string]string{capMail: testAccountID},
			"apiUrl":          "https://api.example.com/jmap",
		})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SessionURL: srv.URL, Token: "test-token"}, logger.Nop())
	_, err := c.Connect(context.Background())
	require.NoError(t, err)
	_, err = c.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestConnect_MissingAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"apiUrl": "https://api.example.com"})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SessionURL: srv.URL, Token: "t"}, logger.Nop())
	_, err := c.Connect(context.Background())

	assert.ErrorIs(t, err, ErrProtocol)
}

func TestConnect_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SessionURL: srv.URL, Token: "t"}, logger.Nop())
	_, err := c.Connect(context.Background())

	assert.ErrorIs(t, err, ErrTransport)
}

func TestMethods_RequireConnect(t *testing.T) {
	c := NewClient(ClientConfig{SessionURL: "https://unused", Token: "t"}, logger.Nop())

	_, _, err := c.FetchAllMailboxes(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

// ── FetchAllMailboxes ───────────────────────────────────────────────────────

func TestFetchAllMailboxes_Success(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["using"], capMail)

		w.Write(methodResponseBody(t, []any{methodMailboxGet, map[string]any{
			"accountId": testAccountID,
			"state":     "s1",
			"list": []map[string]any{
				{"id": "inbox-id", "name": "Inbox", "role": "inbox", "parentId": nil, "sortOrder": 1},
				{"id": "sub-id", "name": "Receipts", "role": nil, "parentId": "inbox-id", "sortOrder": 0},
			},
		}, "0"}))
	})

	c := newConnectedClient(t, srv)
	state, boxes, err := c.FetchAllMailboxes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "s1", state)
	require.Len(t, boxes, 2)
	assert.Equal(t, "Inbox", boxes[0].Name)
	require.NotNil(t, boxes[1].ParentID)
	assert.Equal(t, "inbox-id", *boxes[1].ParentID)
}

func TestFetchAllMailboxes_EmptyState(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(methodResponseBody(t, []any{methodMailboxGet, map[string]any{
			"accountId": testAccountID, "state": "", "list": []any{},
		}, "0"}))
	})

	c := newConnectedClient(t, srv)
	_, _, err := c.FetchAllMailboxes(context.Background())

	assert.ErrorIs(t, err, ErrProtocol)
}

func TestFetchAllMailboxes_EmptyName(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(methodResponseBody(t, []any{methodMailboxGet, map[string]any{
			"accountId": testAccountID, "state": "s1",
			"list": []map[string]any{{"id": "x", "name": ""}},
		}, "0"}))
	})

	c := newConnectedClient(t, srv)
	_, _, err := c.FetchAllMailboxes(context.Background())

	assert.ErrorIs(t, err, ErrProtocol)
}

func TestFetchAllMailboxes_ServerMethodError(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(methodResponseBody(t, []any{"error", map[string]any{
			"type": "accountNotFound", "description": "no such account",
		}, "0"}))
	})

	c := newConnectedClient(t, srv)
	_, _, err := c.FetchAllMailboxes(context.Background())

	require.ErrorIs(t, err, ErrProtocol)
	assert.Contains(t, err.Error(), "accountNotFound")
}

// ── FetchMailboxChanges ─────────────────────────────────────────────────────

func changesHandler(t *testing.T, updatedProperties any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write(methodResponseBody(t, []any{methodMailboxChanges, map[string]any{
			"accountId":         testAccountID,
			"oldState":          "s1",
			"newState":          "s2",
			"hasMoreChanges":    false,
			"created":           []string{"new-1"},
			"updated":           []string{"upd-1"},
			"destroyed":         []string{"gone-1"},
			"updatedProperties": updatedProperties,
		}, "0"}))
	}
}

func TestFetchMailboxChanges_KnownRelevantProperties(t *testing.T) {
	srv := newSessionHandler(t, changesHandler(t, []string{"name", "sortOrder"}))

	c := newConnectedClient(t, srv)
	changes, err := c.FetchMailboxChanges(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "s2", changes.NewState)
	assert.Equal(t, []string{"new-1"}, changes.CreatedIDs)
	assert.Equal(t, []string{"upd-1"}, changes.UpdatedIDs)
	assert.Equal(t, []string{"gone-1"}, changes.DestroyedIDs)
	assert.True(t, changes.UpdatedPropertiesKnown)
}

func TestFetchMailboxChanges_UnknownProperties(t *testing.T) {
	srv := newSessionHandler(t, changesHandler(t, nil))

	c := newConnectedClient(t, srv)
	changes, err := c.FetchMailboxChanges(context.Background(), "s1")

	require.NoError(t, err)
	assert.False(t, changes.UpdatedPropertiesKnown)
}

func TestFetchMailboxChanges_IrrelevantProperties(t *testing.T) {
	srv := newSessionHandler(t, changesHandler(t, []string{"totalEmails", "unreadEmails"}))

	c := newConnectedClient(t, srv)
	changes, err := c.FetchMailboxChanges(context.Background(), "s1")

	require.NoError(t, err)
	assert.False(t, changes.UpdatedPropertiesKnown)
}

func TestFetchMailboxChanges_MalformedEnvelope(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"methodResponses": "not-an-array"}`))
	})

	c := newConnectedClient(t, srv)
	_, err := c.FetchMailboxChanges(context.Background(), "s1")

	assert.ErrorIs(t, err, ErrProtocol)
}

// ── FetchMailboxesByIDs ─────────────────────────────────────────────────────

func TestFetchMailboxesByIDs_EmptyInput(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty id set")
	})

	c := newConnectedClient(t, srv)
	boxes, err := c.FetchMailboxesByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestFetchMailboxesByIDs_SendsIDs(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MethodCalls []json.RawMessage `json:"methodCalls"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.MethodCalls, 1)
		assert.Contains(t, string(req.MethodCalls[0]), `"ids":["a","b"]`)

		w.Write(methodResponseBody(t, []any{methodMailboxGet, map[string]any{
			"accountId": testAccountID, "state": "s2",
			"list":     []map[string]any{{"id": "a", "name": "A"}},
			"notFound": []string{"b"},
		}, "0"}))
	})

	c := newConnectedClient(t, srv)
	boxes, err := c.FetchMailboxesByIDs(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "a", boxes[0].ServerID)
}

// ── ListEmails / DownloadBlob ───────────────────────────────────────────────

func TestListEmails_ChainsQueryIntoGet(t *testing.T) {
	srv := newSessionHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MethodCalls []json.RawMessage `json:"methodCalls"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.MethodCalls, 2)
		assert.Contains(t, string(req.MethodCalls[1]), `"#ids"`)

		w.Write(methodResponseBody(t,
			[]any{methodEmailQuery, map[string]any{"ids": []string{"e1"}}, "0"},
			[]any{methodEmailGet, map[string]any{
				"accountId": testAccountID,
				"state":     "es1",
				"list": []map[string]any{{
					"id":      "e1",
					"subject": "Hello",
					"from":    []map[string]string{{"name": "Alice", "email": "alice@example.com"}},
					"sentAt":  "2026-08-20T10:00:00Z",
					"blobId":  "blob-1",
				}},
			}, "1"},
		))
	})

	c := newConnectedClient(t, srv)
	emails, err := c.ListEmails(context.Background(), "inbox-id", 10)

	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "Hello", emails[0].Subject)
	assert.Equal(t, "Alice", emails[0].FromLine())
	assert.Equal(t, "blob-1", emails[0].BlobID)
}

func TestDownloadBlob_ExpandsTemplate(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"primaryAccounts": map[string]string{capMail: testAccountID},
			"apiUrl":          srv.URL + "/api",
			"downloadUrl":     srv.URL + "/download/{accountId}/{blobId}/{name}?type={type}",
		})
	})
	mux.HandleFunc(fmt.Sprintf("/download/%s/blob-9/email", testAccountID), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.URL.Query().Get("type"))
		w.Write([]byte("raw message bytes"))
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(ClientConfig{SessionURL: srv.URL + "/session", Token: "test-token"}, logger.Nop())
	_, err := c.Connect(context.Background())
	require.NoError(t, err)

	data, err := c.DownloadBlob(context.Background(), "blob-9")
	require.NoError(t, err)
	assert.Equal(t, "raw message bytes", string(data))
}
