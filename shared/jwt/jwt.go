package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/forumstate/shared/domain"
)

// Claims is what the client can read from an access token. The signature is
// never checked here: only the backend holds the key.
type Claims struct {
	UserId    domain.UserId
	ExpiresAt time.Time // zero when the token carries no exp claim
}

func Inspect(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("malformed access token: %w", err)
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	var claims Claims
	if id, ok := mapClaims["id"].(string); ok {
		claims.UserId = id
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether token is known to be expired at now.
// Empty, opaque (non-JWT) and exp-less tokens are never considered expired.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims, err := Inspect(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(claims.ExpiresAt)
}
