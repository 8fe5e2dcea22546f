package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token issued by the external identity provider. Only the
// fields the review workflow needs are read.
type Claims struct {
	Role         string `json:"role"`
	DepartmentID string `json:"department_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for actor. The service itself never
// authenticates users; this exists for operators and tests.
func IssueToken(actor domain.Actor, secret, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:         string(actor.Role),
		DepartmentID: actor.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{Success: false, Message: msg})
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens and
// turns their claims into the request's actor.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}

	return func(c *gin.Context) {
		// Retrieve logger from the standard context
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		// Parse and validate the token
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			// Check the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}, parserOpts...)
		if err != nil || !token.Valid {
			logger.Warn("Invalid token", slog.Any("error", err))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortUnauthorized(c, msg)
			return
		}

		actor := domain.Actor{
			ID:           claims.Subject,
			Role:         domain.Role(claims.Role),
			DepartmentID: claims.DepartmentID,
			IPAddress:    c.ClientIP(),
		}
		if actor.ID == "" || !actor.Role.IsValid() {
			logger.Error("Token is missing a subject or carries an unknown role", slog.String("role", claims.Role))
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		// Add user fields to the logger and store everything on both contexts
		enrichedLogger := logger.With(
			slog.String("user_id", actor.ID),
			slog.String("role", string(actor.Role)),
		)
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(actorKey), actor)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next() // Proceed to the next handler
	}
}

// RequireRole rejects requests whose actor does not hold one of roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Envelope{Success: false, Message: "You do not have permission to access this resource"})
	}
}
