package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collegehub/collegehub-api/internal/pkg/jwthelper"
)

const ClaimsKey = "authClaims"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT checks the Bearer token and stores the verified claims in the
// request context for handlers to pick up.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})

			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// RequireRoles rejects callers whose token role is not in the allowed set.
// Department scoping happens in the service layer; this middleware only
// gates by role.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := GetClaims(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})

			return
		}

		for _, role := range roles {
			if claims.Role == role {
				ctx.Next()

				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
	}
}

func GetClaims(ctx *gin.Context) (jwthelper.Claims, error) {
	value, exists := ctx.Get(ClaimsKey)
	if !exists {
		return jwthelper.Claims{}, errors.New("no auth claims in context")
	}

	claims, ok := value.(jwthelper.Claims)
	if !ok {
		return jwthelper.Claims{}, errors.New("malformed auth claims in context")
	}

	return claims, nil
}
