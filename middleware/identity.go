package middleware

import (
	"strings"

	"bookstore-api/auth"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// ResolveIdentity decodes the bearer credential once per request and stores
// the result on the context. Resolution is best-effort: a missing or
// undecodable token yields the anonymous identity, never an error. Whether
// anonymity is acceptable is decided per operation by the authorization gate.
func ResolveIdentity(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.Identity{}

		header := c.GetHeader("Authorization")
		if header != "" {
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			if decoded, err := tokens.Decode(tokenStr); err == nil {
				identity = decoded
			}
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity resolved for this request. Handlers
// pass it explicitly into service calls.
func IdentityFrom(c *gin.Context) auth.Identity {
	if val, ok := c.Get(identityKey); ok {
		if id, ok := val.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}
