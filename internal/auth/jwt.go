package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Mateteriya/UpNDown-sub000/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the seated player's identity inside the session token.
// Username is embedded so handlers can label seats and rooms without a user
// lookup on every request.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid token")

// GenerateToken mints the signed session token that register and login set in
// the auth cookie.
func GenerateToken(userID int64, username string, cfg config.Config) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// ParseAndValidateToken checks signature, signing method, issuer, and time
// bounds. A short leeway absorbs clock skew between the server and whatever
// proxies sit in front of it.
func ParseAndValidateToken(tokenString string, cfg config.Config) (*Claims, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	tok, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (any, error) {
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
