package credential

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from a JWT access token without
// verifying its signature. Login events from the credentials API often omit
// an explicit expiry; the token itself is the next best source. Returns
// false for opaque (non-JWT) tokens or tokens without an exp claim.
//
// The unverified parse is deliberate: expiry here only schedules the next
// refresh, it is never an authorization decision.
func TokenExpiry(token string) (int64, bool) {
	claims := claimsOf(token)
	if claims == nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	return exp.Unix(), true
}

// TokenSubject extracts the sub claim from a JWT access token without
// verifying its signature. Used to backfill the record's user identity when
// the login event does not carry one.
func TokenSubject(token string) (string, bool) {
	claims := claimsOf(token)
	if claims == nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

func claimsOf(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
