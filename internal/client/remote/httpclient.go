package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the note authority. Every request is
// authorized with the identity the client was constructed with.
type HTTPClient struct {
	baseURL  string
	identity *identity.Identity
	hc       *http.Client
}

type errorResponse struct {
	Error string `json:"error"`
}

type listNotesResponse struct {
	Notes []models.Note `json:"notes"`
}

type getNoteResponse struct {
	Note models.Note `json:"note"`
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type createNoteResponse struct {
	ID uint64 `json:"id"`
}

type pingResponse struct {
	Status string `json:"status"`
}

// NewHTTPClient constructs a client bound to the given identity. The
// identity must be non-nil; guest sessions have no remote client at all.
func NewHTTPClient(baseURL string, id *identity.Identity) (*HTTPClient, error) {
	if id == nil {
		return nil, errors.New("remote client requires an identity")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid authority address: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	return &HTTPClient{baseURL: u.String(), identity: id, hc: &http.Client{}}, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var resp listNotesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *HTTPClient) GetNoteByID(ctx context.Context, id uint64) (*models.Note, error) {
	var resp getNoteResponse
	path := fmt.Sprintf("/api/v1/notes/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, title, content string) (uint64, error) {
	// Fail fast on the size cap, no round trip.
	if err := models.ValidateNoteSize(title, content); err != nil {
		return 0, err
	}
	var resp createNoteResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/notes", &createNoteRequest{Title: title, Content: content}, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one authorized round trip. in is marshalled as the JSON body
// (nil for none); out receives the decoded success payload.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.identity.Authorize(req, payload); err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("malformed authority response: %w", err)
		}
		return nil
	}

	return mapError(resp.StatusCode, body)
}

// mapError converts an authority failure status into the client's error
// taxonomy, decoding the reason text when one was provided.
func mapError(status int, body []byte) error {
	var er errorResponse
	_ = json.Unmarshal(body, &er)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if er.Error == "" {
			er.Error = "request rejected"
		}
		return &RejectionError{Reason: er.Error}
	case status >= 500:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected authority status %d", status)
	}
}
