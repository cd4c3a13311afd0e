package auth

import (
	"testing"
	"time"

	"github.com/Mateteriya/UpNDown-sub000/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() config.Config {
	return config.Config{
		JWTSecret: "test-secret-0123456789",
		JWTIssuer: "upndown",
		JWTTTL:    time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(42, "ada", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidateToken(token, cfg)
	if err != nil {
		t.Fatalf("ParseAndValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ada" {
		t.Fatalf("claims = (%d, %q), want (42, ada)", claims.UserID, claims.Username)
	}
	if claims.Issuer != cfg.JWTIssuer {
		t.Fatalf("issuer = %q, want %q", claims.Issuer, cfg.JWTIssuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(1, "ada", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := cfg
	other.JWTSecret = "a-different-secret-entirely"
	if _, err := ParseAndValidateToken(token, other); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(1, "ada", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := cfg
	other.JWTIssuer = "someone-else"
	if _, err := ParseAndValidateToken(token, other); err == nil {
		t.Fatalf("token from another issuer must be rejected")
	}
}

func TestParseRejectsUnexpectedSigningMethod(t *testing.T) {
	cfg := testJWTConfig()
	claims := Claims{
		UserID:   1,
		Username: "ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}

	if _, err := ParseAndValidateToken(token, cfg); err == nil {
		t.Fatalf("HS512 token must be rejected, only HS256 is accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWTTTL = -2 * time.Hour // beyond the leeway
	token, err := GenerateToken(1, "ada", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cfg.JWTTTL = time.Hour
	if _, err := ParseAndValidateToken(token, cfg); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}
