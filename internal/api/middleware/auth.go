package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
	"github.com/wanfu-temple/temple-api/internal/pkg/jwthelper"
)

// ClaimsKey is where VerifyJWT stores the parsed claims in the gin
// context.
const ClaimsKey = "claims"

var (
	errMissingToken = errors.New("missing or malformed Authorization header")
	errInvalidToken = errors.New("invalid or expired token")
	errNotAdmin     = errors.New("admin role required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			ctx.Abort()
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			ctx.Abort()
			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// RequireAdmin enforces the admin role at the point of mutation.
// Client-side role gating is presentation only and is never trusted.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(ClaimsKey)
		if !exists {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			ctx.Abort()
			return
		}

		claims, ok := value.(*jwthelper.Claims)
		if !ok || claims.Role != domain.RoleAdmin {
			response.RenderErr(ctx, response.ErrForbidden(errNotAdmin))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
