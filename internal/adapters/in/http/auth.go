package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var errMissingToken = errors.New("missing bearer token")

// Claims is the session token payload issued by the auth provider.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Actor validates the claims and converts them to a domain actor.
func (c Claims) Actor() (actor.Actor, error) {
	id, err := kernel.UUIDFromString(c.UserID)
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.ParseRole(c.Role)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role, c.Name, c.Email, c.Phone)
}

// IssueToken signs an HS256 token for a. Used by the auth provider and tests.
func IssueToken(secret []byte, a actor.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: a.ID().String(),
		Role:   a.Role().String(),
		Name:   a.Name(),
		Email:  a.Email(),
		Phone:  a.Phone(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Authenticate verifies the bearer token and stores the actor in the echo
// context. Browsers cannot set headers on WebSocket upgrades, so a "token"
// query parameter is accepted as well.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFromRequest(c.Request())
			if err != nil {
				return unauthorized(c, err)
			}

			var claims Claims
			_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil {
				return unauthorized(c, err)
			}

			a, err := claims.Actor()
			if err != nil {
				return unauthorized(c, err)
			}

			c.Set(actorContextKey, a)
			return next(c)
		}
	}
}

func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return "", errMissingToken
		}
		return strings.TrimSpace(token), nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errMissingToken
}

func actorFrom(c echo.Context) actor.Actor {
	a, _ := c.Get(actorContextKey).(actor.Actor)
	return a
}

func unauthorized(c echo.Context, err error) error {
	c.Logger().Debugf("rejecting token: %v", err)
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Invalid or missing token",
	})
}
