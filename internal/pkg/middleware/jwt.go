package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/internal/utils"
)

// Context keys set once a bearer token is accepted
const (
	ContextKeyToken  = "user"
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// JWTAuthMiddleware validates HS256 bearer tokens issued by the session service
// and copies the user_id and role claims into the echo context.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(config.Secret),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    ContextKeyToken,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return jwt.MapClaims{}
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get(ContextKeyToken).(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			if config.Issuer != "" && !claims.VerifyIssuer(config.Issuer, true) {
				return
			}
			if userID, exists := claims["user_id"]; exists {
				c.Set(ContextKeyUserID, fmt.Sprintf("%v", userID))
			}
			if role, exists := claims["role"]; exists {
				c.Set(ContextKeyRole, fmt.Sprintf("%v", role))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return utils.UnauthorizedResponse(c, "Invalid or missing token")
		},
	})
}

// RequireRole allows the request through only when the token carried the given role
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(ContextKeyRole).(string)
			if got == "" || got != role {
				return utils.ForbiddenResponse(c, "Insufficient role")
			}
			return next(c)
		}
	}
}
