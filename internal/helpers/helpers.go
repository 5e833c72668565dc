package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoVerificationKey = errors.New("neither a JWKS url nor a signing secret is configured")

// TokenValidator verifies bearer tokens against a remote JWKS, or an HMAC secret when no JWKS is configured.
type TokenValidator struct {
	jwks   *keyfunc.JWKS
	secret []byte
}

// NewTokenValidator fetches the key set from jwksURL when it is set and keeps it refreshed in the background.
func NewTokenValidator(ctx context.Context, jwksURL, secret string) (*TokenValidator, error) {
	if jwksURL == "" {
		if secret == "" {
			return nil, ErrNoVerificationKey
		}
		return &TokenValidator{secret: []byte(secret)}, nil
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshTimeout:    10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &TokenValidator{jwks: jwks, secret: []byte(secret)}, nil
}

func (v *TokenValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func (v *TokenValidator) Validate(tokenStr string) (*Claims, error) {
	var keyFunc jwt.Keyfunc
	var methods []string
	if v.jwks != nil {
		keyFunc = v.jwks.Keyfunc
		methods = []string{"RS256", "ES256", "EdDSA"}
	} else {
		keyFunc = func(*jwt.Token) (any, error) { return v.secret, nil }
		methods = []string{"HS256", "HS384", "HS512"}
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, keyFunc, jwt.WithValidMethods(methods), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
