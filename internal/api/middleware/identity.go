package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextOwnerID is the gin context key for the resolved caller identity.
const ContextOwnerID = "owner_id"

// IdentityResolver turns a bearer token into an opaque owner id. Token
// validation belongs to the identity subsystem; this middleware only consumes
// its result. A nil resolver means every caller is anonymous.
type IdentityResolver func(token string) (ownerID string, ok bool)

// OptionalIdentity attaches the caller's owner id to the context when a
// bearer token is present and resolves. Requests without a token proceed
// anonymously; they are never rejected here.
func OptionalIdentity(resolve IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolve != nil {
			auth := c.GetHeader("Authorization")
			if token, found := strings.CutPrefix(auth, "Bearer "); found && token != "" {
				if ownerID, ok := resolve(token); ok {
					c.Set(ContextOwnerID, ownerID)
				}
			}
		}
		c.Next()
	}
}
