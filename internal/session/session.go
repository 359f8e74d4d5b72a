package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// CookieName is where the signed session token lives on the browser side.
const CookieName = "chada_session"

// ContextKey is where the jwt middleware stores the parsed token.
const ContextKey = "session"

var ErrNoSession = errors.New("no session")

// Issue mints a new anonymous session: a random ID wrapped in a signed
// token. The ID is the only claim the storefront cares about; it keys the
// visitor's cart.
func Issue(secret []byte) (id string, token string, err error) {
	id = uuid.NewString()
	claims := jwt.MapClaims{
		"session_id": id,
		"iat":        time.Now().Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return id, token, nil
}

// Parse validates a token string and returns the session ID inside it.
func Parse(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}
	return idFromClaims(token.Claims)
}

// FromCtx extracts the session ID placed in locals by the jwt middleware.
func FromCtx(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return "", ErrNoSession
	}
	return idFromClaims(token.Claims)
}

func idFromClaims(claims jwt.Claims) (string, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	id, ok := mapClaims["session_id"].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
