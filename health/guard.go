package health

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Guard errors.
var (
	// ErrMissingGuardKey indicates GuardConfig.Key is empty.
	ErrMissingGuardKey = errors.New("health: guard key is required")

	// ErrInvalidToken indicates a bearer token failed validation.
	ErrInvalidToken = errors.New("health: invalid token")
)

// GuardConfig configures the detailed-endpoint token guard.
type GuardConfig struct {
	// Key is the HMAC signing key tokens must be signed with.
	Key []byte

	// Issuer, when set, is the required iss claim.
	Issuer string

	// Audience, when set, is the required aud claim.
	Audience string

	// HeaderName is the header containing the token.
	// Default: "Authorization"
	HeaderName string

	// TokenPrefix is the prefix before the token in the header.
	// Default: "Bearer "
	TokenPrefix string
}

// Guard protects a handler with JWT bearer-token validation. Detailed
// reports expose component internals, so hosts may not want them public.
type Guard struct {
	config GuardConfig
}

// NewGuard creates a new token guard.
func NewGuard(config GuardConfig) (*Guard, error) {
	if len(config.Key) == 0 {
		return nil, ErrMissingGuardKey
	}
	if config.HeaderName == "" {
		config.HeaderName = "Authorization"
	}
	if config.TokenPrefix == "" {
		config.TokenPrefix = "Bearer "
	}

	return &Guard{config: config}, nil
}

// Wrap returns a handler that validates the bearer token before delegating
// to next. Requests without a valid token answer 401.
func (g *Guard) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.validate(r); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
			})
			return
		}
		next(w, r)
	}
}

func (g *Guard) validate(r *http.Request) error {
	header := r.Header.Get(g.config.HeaderName)
	if header == "" || !strings.HasPrefix(header, g.config.TokenPrefix) {
		return ErrInvalidToken
	}
	raw := strings.TrimPrefix(header, g.config.TokenPrefix)

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if g.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.config.Issuer))
	}
	if g.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(g.config.Audience))
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return g.config.Key, nil
	}, opts...)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
