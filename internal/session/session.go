package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// CookieName is the cookie carrying the session identifier.
const CookieName = "sessionId"

// CookieMaxAge is seven days, in seconds.
const CookieMaxAge = 60 * 60 * 24 * 7

type sessionKey struct{}

// ErrorBody is the body written when a request has no session.
type ErrorBody struct {
	Error string `json:"error"`
}

// NewID returns a fresh random (v4) session identifier.
func NewID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewCookie builds the Set-Cookie value issuing id for the whole site.
func NewCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:   CookieName,
		Value:  id,
		Path:   "/",
		MaxAge: CookieMaxAge,
	}
}

// FromContext returns the session resolved by Require, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// WithSession returns a copy of ctx carrying id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// Require is operation middleware that rejects requests without a session
// cookie with 401 before the handler runs.
func Require(ctx huma.Context, next func(huma.Context)) {
	cookie, err := huma.ReadCookie(ctx, CookieName)
	if err != nil || cookie.Value == "" {
		ctx.SetHeader("Content-Type", "application/json")
		ctx.SetStatus(http.StatusUnauthorized)
		_ = json.NewEncoder(ctx.BodyWriter()).Encode(ErrorBody{Error: "Unauthorized"})
		return
	}

	next(huma.WithContext(ctx, WithSession(ctx.Context(), cookie.Value)))
}
