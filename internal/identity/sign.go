package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

// Header names used by the self-certified (anonymous) request scheme.
const (
	HeaderPrincipal = "X-Notechain-Principal"
	HeaderPublicKey = "X-Notechain-Pubkey"
	HeaderDate      = "X-Notechain-Date"
	HeaderSignature = "X-Notechain-Signature"
)

// canonicalString is the byte sequence covered by a request signature.
// The body is represented by its SHA-256 digest so large payloads are not
// re-buffered for signing.
func canonicalString(method, path string, body []byte, date string) []byte {
	sum := sha256.Sum256(body)
	return []byte(method + "\n" + path + "\n" + hex.EncodeToString(sum[:]) + "\n" + date)
}

// Authorize attaches authentication to an outbound request. Interactive
// identities send a bearer token; anonymous identities sign the request.
// body must be the exact payload of the request (nil for GET).
func (i *Identity) Authorize(req *http.Request, body []byte) error {
	switch i.kind {
	case KindInteractive:
		req.Header.Set("Authorization", "Bearer "+i.token)
		return nil
	case KindAnonymous:
		date := time.Now().UTC().Format(time.RFC3339)
		sig := ed25519.Sign(i.key, canonicalString(req.Method, req.URL.Path, body, date))
		req.Header.Set(HeaderPrincipal, i.principal)
		req.Header.Set(HeaderPublicKey, base64.StdEncoding.EncodeToString(i.PublicKey()))
		req.Header.Set(HeaderDate, date)
		req.Header.Set(HeaderSignature, base64.StdEncoding.EncodeToString(sig))
		return nil
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidCredential, i.kind)
	}
}

// VerifySignature checks a self-certified request signature. The caller is
// responsible for checking that the claimed principal matches
// PrincipalFromPublicKey(pub) and that date is within an acceptable window.
func VerifySignature(pub ed25519.PublicKey, method, path string, body []byte, date string, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, canonicalString(method, path, body, date), sig)
}
