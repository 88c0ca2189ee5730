package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims carried by an access token. Subject holds the user ID.
type AccessClaims struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the subject as a user ID.
func (c *AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID int64, userName string, roles []string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Name:  userName,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the AccessClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AccessClaims, error) {
	return parseJWT(tokenString, secretKey)
}

// ParseExpiredJWT checks the signature of an access token but ignores its expiry.
// Used by the refresh flow, where the access token is expected to be stale.
func ParseExpiredJWT(tokenString string, secretKey string) (*AccessClaims, error) {
	return parseJWT(tokenString, secretKey, jwt.WithoutClaimsValidation())
}

func parseJWT(tokenString, secretKey string, opts ...jwt.ParserOption) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, opts...)

	if err != nil {
		return nil, err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
