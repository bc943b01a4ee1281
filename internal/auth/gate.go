package auth

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrUnauthorized is returned when an operation needs a logged-in user and there is none.
var ErrUnauthorized = errors.New("authentication required")

// BearerPrefix frames the token inside the session cookie.
const BearerPrefix = "Bearer "

// Identity is the authenticated user behind a request.
type Identity struct {
	UserID int64
	Email  string
}

// Principal is the resolved identity of a request, or its absence.
type Principal struct {
	identity      Identity
	authenticated bool
}

// Anonymous returns the principal of a request without a valid session.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated returns the principal of a request carrying a valid session.
func Authenticated(id Identity) Principal {
	return Principal{identity: id, authenticated: true}
}

// IsAuthenticated reports whether the principal is a logged-in user.
func (p Principal) IsAuthenticated() bool {
	return p.authenticated
}

// Identity returns the user behind the principal; zero for Anonymous.
func (p Principal) Identity() Identity {
	return p.identity
}

// Gate derives request principals from session credentials.
type Gate struct {
	codec *TokenCodec
}

// NewGate creates a Gate backed by codec.
func NewGate(codec *TokenCodec) *Gate {
	return &Gate{codec: codec}
}

// Resolve turns a "Bearer <token>" credential into a principal. Missing,
// unframed or invalid credentials resolve to Anonymous.
func (g *Gate) Resolve(credential string) Principal {
	if credential == "" {
		return Anonymous()
	}
	tokenStr, ok := strings.CutPrefix(credential, BearerPrefix)
	if !ok || tokenStr == "" {
		return Anonymous()
	}

	claims, err := g.codec.Decode(tokenStr)
	if err != nil {
		log.Debug().Err(err).Msg("Session token rejected")
		return Anonymous()
	}
	return Authenticated(Identity{UserID: claims.UserID, Email: claims.Subject})
}

// RequireAuthenticated returns the identity of p, or ErrUnauthorized for Anonymous.
func RequireAuthenticated(p Principal) (Identity, error) {
	if !p.IsAuthenticated() {
		return Identity{}, ErrUnauthorized
	}
	return p.Identity(), nil
}
