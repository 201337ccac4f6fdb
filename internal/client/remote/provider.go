package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// IdentityProvider is the client of the authority's identity endpoints.
// Unlike the note client it is not bound to an identity; its whole purpose
// is acquiring one.
type IdentityProvider struct {
	baseURL string
	hc      *http.Client
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// NewIdentityProvider builds a provider client for the given authority.
func NewIdentityProvider(baseURL string) (*IdentityProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid authority address: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	return &IdentityProvider{baseURL: u.String(), hc: &http.Client{}}, nil
}

// Register creates an account with the identity provider.
func (p *IdentityProvider) Register(ctx context.Context, username string, password []byte) error {
	return p.post(ctx, "/api/v1/identity/register", username, password, nil)
}

// Login authenticates and returns the delegation token.
func (p *IdentityProvider) Login(ctx context.Context, username string, password []byte) (string, error) {
	var resp loginResponse
	if err := p.post(ctx, "/api/v1/identity/login", username, password, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (p *IdentityProvider) post(ctx context.Context, path, username string, password []byte, out any) error {
	payload, err := json.Marshal(&credentialsRequest{Username: username, Password: string(password)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
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
		return json.Unmarshal(body, out)
	}
	return mapError(resp.StatusCode, body)
}
