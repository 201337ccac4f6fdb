package httpapi

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/server/auth"
)

// principalKey is the gin context key the authentication middleware
// stores the resolved principal under.
const principalKey = "principal"

// signatureWindow bounds how stale a self-certified request date may be.
const signatureWindow = 5 * time.Minute

// RequireIdentity resolves the caller's principal from either a bearer
// token or the self-certified signature headers and aborts with 401 when
// neither checks out.
func RequireIdentity(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			principal, err := principalFromBearer(header, secret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(principalKey, principal)
			c.Next()
			return
		}

		principal, ok := principalFromSignature(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

func principalFromBearer(header string, secret []byte) (string, error) {
	token := strings.TrimPrefix(header, "Bearer ")
	return auth.GetPrincipalFromToken(token, secret)
}

// principalFromSignature verifies the X-Notechain-* headers. The claimed
// principal must be derived from the presented public key; the key itself
// is the identity, the headers just transport it.
func principalFromSignature(c *gin.Context) (string, bool) {
	claimed := c.GetHeader(identity.HeaderPrincipal)
	pubB64 := c.GetHeader(identity.HeaderPublicKey)
	date := c.GetHeader(identity.HeaderDate)
	sigB64 := c.GetHeader(identity.HeaderSignature)
	if claimed == "" || pubB64 == "" || date == "" || sigB64 == "" {
		return "", false
	}

	when, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return "", false
	}
	if d := time.Since(when); d > signatureWindow || d < -signatureWindow {
		return "", false
	}

	pub, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		return "", false
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return "", false
	}
	if identity.PrincipalFromPublicKey(pub) != claimed {
		return "", false
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if !identity.VerifySignature(pub, c.Request.Method, c.Request.URL.Path, body, date, sig) {
		return "", false
	}
	return claimed, true
}
