// Package identity defines the identity handle shared by the client and
// the note authority: who is acting, and how requests are authenticated.
// The client constructs and signs; the authority verifies with the same
// scheme.
//
// Two kinds of identity exist. An interactive identity carries a bearer
// token delegated by the identity provider. An anonymous identity is
// synthesized locally from an ed25519 key pair with no external round trip;
// its principal is self-certifying (derived from the public key), and each
// request is signed with the private key.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Kind classifies how an identity was acquired.
type Kind string

const (
	KindAnonymous   Kind = "anonymous"
	KindInteractive Kind = "interactive"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrNoPrincipal       = errors.New("token carries no principal")
)

// Identity is an opaque credential bound to a single principal.
// The zero value is not usable; construct via NewAnonymous, NewInteractive,
// or FromCredential.
type Identity struct {
	kind      Kind
	principal string
	key       ed25519.PrivateKey // anonymous only
	token     string             // interactive only
}

// NewAnonymous synthesizes a fresh local identity. No network traffic is
// involved; the principal is derived from the generated public key.
func NewAnonymous() (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Identity{
		kind:      KindAnonymous,
		principal: PrincipalFromPublicKey(pub),
		key:       priv,
	}, nil
}

// NewInteractive wraps a delegation token issued by the identity provider.
// The principal is read from the token's claims; the token signature is the
// authority's concern, not the client's, so it is not verified here.
func NewInteractive(token string) (*Identity, error) {
	principal, err := principalFromToken(token)
	if err != nil {
		return nil, err
	}
	return &Identity{kind: KindInteractive, principal: principal, token: token}, nil
}

func principalFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	principal, ok := claims["principal"].(string)
	if !ok || principal == "" {
		return "", ErrNoPrincipal
	}
	return principal, nil
}

// PrincipalFromPublicKey derives the textual principal for a public key.
// The mapping is stable: the authority recomputes it to check that a signed
// request's claimed principal matches the presented key.
func PrincipalFromPublicKey(pub ed25519.PublicKey) string {
	sum := sha256.Sum224(pub)
	return hex.EncodeToString(sum[:])
}

func (i *Identity) Kind() Kind { return i.kind }

// Principal returns the human-displayable string form of the identity.
func (i *Identity) Principal() string { return i.principal }

// Token returns the bearer token for interactive identities, or "".
func (i *Identity) Token() string { return i.token }

// PublicKey returns the public key for anonymous identities, or nil.
func (i *Identity) PublicKey() ed25519.PublicKey {
	if i.key == nil {
		return nil
	}
	return i.key.Public().(ed25519.PublicKey)
}

// Credential is the serializable form of an Identity, persisted in the
// local profile record so a session can be restored across restarts.
type Credential struct {
	Kind  Kind   `json:"kind"`
	Seed  []byte `json:"seed,omitempty"`
	Token string `json:"token,omitempty"`
}

// Credential returns the persistable form of the identity.
func (i *Identity) Credential() Credential {
	c := Credential{Kind: i.kind, Token: i.token}
	if i.key != nil {
		c.Seed = i.key.Seed()
	}
	return c
}

// FromCredential reconstructs an Identity from its persisted form.
func FromCredential(c Credential) (*Identity, error) {
	switch c.Kind {
	case KindAnonymous:
		if len(c.Seed) != ed25519.SeedSize {
			return nil, ErrInvalidCredential
		}
		priv := ed25519.NewKeyFromSeed(c.Seed)
		return &Identity{
			kind:      KindAnonymous,
			principal: PrincipalFromPublicKey(priv.Public().(ed25519.PublicKey)),
			key:       priv,
		}, nil
	case KindInteractive:
		return NewInteractive(c.Token)
	default:
		return nil, ErrInvalidCredential
	}
}
