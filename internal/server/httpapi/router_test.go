package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/client/remote"
	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/auth"
	"github.com/notechain/notechain/internal/server/notes"
	"github.com/notechain/notechain/internal/server/users"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.Nop()
	noteStore := notes.NewStore("", logger)
	userStore := users.NewStore("", logger)

	router := NewRouter(noteStore, userStore, testSecret, time.Hour, logger)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	require.Equal(t, "OK", body["status"])
}

func TestNotesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/notes")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterLoginAndCreateNote(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/identity/register",
		map[string]string{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/identity/login",
		map[string]string{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginBody map[string]string
	decode(t, resp, &loginBody)
	require.NotEmpty(t, loginBody["token"])

	id, err := identity.NewInteractive(loginBody["token"])
	require.NoError(t, err)
	require.Equal(t, "alice", id.Principal())

	client, err := remote.NewHTTPClient(srv.URL, id)
	require.NoError(t, err)

	noteID, err := client.CreateNote(context.Background(), "Hello", "from the integration test")
	require.NoError(t, err)
	require.Equal(t, uint64(1), noteID)

	list, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Hello", list[0].Title)
	require.Equal(t, "alice", list[0].Owner)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/identity/register",
		map[string]string{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/identity/login",
		map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAnonymousIdentityCanCreateAndList(t *testing.T) {
	srv := newTestServer(t)

	id, err := identity.NewAnonymous()
	require.NoError(t, err)

	client, err := remote.NewHTTPClient(srv.URL, id)
	require.NoError(t, err)

	noteID, err := client.CreateNote(context.Background(), "Signed", "self-certified request")
	require.NoError(t, err)

	list, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, noteID, list[0].ID)
	require.Equal(t, id.Principal(), list[0].Owner)
}

func TestTamperedSignatureRejected(t *testing.T) {
	srv := newTestServer(t)

	id, err := identity.NewAnonymous()
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/notes", nil)
	require.NoError(t, err)
	require.NoError(t, id.Authorize(req, nil))
	req.Header.Set(identity.HeaderSignature, "aW52YWxpZA==")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClaimedPrincipalMustMatchKey(t *testing.T) {
	srv := newTestServer(t)

	id, err := identity.NewAnonymous()
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/notes", nil)
	require.NoError(t, err)
	require.NoError(t, id.Authorize(req, nil))
	req.Header.Set(identity.HeaderPrincipal, "someone-else")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetNoteByIDIsPublic(t *testing.T) {
	srv := newTestServer(t)

	id, err := identity.NewAnonymous()
	require.NoError(t, err)
	client, err := remote.NewHTTPClient(srv.URL, id)
	require.NoError(t, err)

	noteID, err := client.CreateNote(context.Background(), "Shared", "public by id")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/v1/notes/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Note struct {
			ID    uint64 `json:"id"`
			Title string `json:"title"`
		} `json:"note"`
	}
	decode(t, resp, &body)
	require.Equal(t, noteID, body.Note.ID)
	require.Equal(t, "Shared", body.Note.Title)
}

func TestValidationErrorsSurfaceReason(t *testing.T) {
	srv := newTestServer(t)

	token, err := auth.GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/notes",
		bytes.NewReader([]byte(`{"title":"","content":"x"}`)))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	require.Equal(t, "Title cannot be empty.", body["error"])
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	srv := newTestServer(t)

	owner, err := identity.NewAnonymous()
	require.NoError(t, err)
	ownerClient, err := remote.NewHTTPClient(srv.URL, owner)
	require.NoError(t, err)

	noteID, err := ownerClient.CreateNote(context.Background(), "Mine", "x")
	require.NoError(t, err)

	other, err := identity.NewAnonymous()
	require.NoError(t, err)

	payload := []byte(`{"title":"Stolen","content":"y"}`)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/notes/1", bytes.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, other.Authorize(req, payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	note, err := ownerClient.GetNoteByID(context.Background(), noteID)
	require.NoError(t, err)
	require.Equal(t, "Mine", note.Title)
}
