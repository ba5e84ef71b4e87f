package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	client := "laptop"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, client, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Client != client {
		t.Errorf("expected client %s, got %s", client, token.Client)
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != client {
		t.Errorf("expected subject %q, got %s", client, claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		client   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "c", time.Hour, "key"},
		{"empty client", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "c", 0, "key"},
		{"negative duration", "iss", "c", -time.Second, "key"},
		{"empty key", "iss", "c", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.client, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	// First generate a valid token
	genToken, err := GenerateJWTToken(issuer, "phone", 5*time.Minute, key)
	if err != nil {
		t.Fatal(err)
	}

	// Now validate it
	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.Client != "phone" {
		t.Errorf("expected client phone, got %s", parsedToken.Client)
	}
	if parsedToken.String() != genToken.SignedString {
		t.Error("expected parsed token to keep its signed string")
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	issuer := "test-issuer"

	genToken, _ := GenerateJWTToken(issuer, "c", time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", issuer)
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	key := "key"
	past := time.Now().Add(-time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		Subject:   "c",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
	})
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}

	_, err = ValidateAndParseJWTToken(signed, key, "test-issuer")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseJWTToken_EmptySubject(t *testing.T) {
	key := "key"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "iss",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, _ := token.SignedString([]byte(key))

	if _, err := ValidateAndParseJWTToken(signed, key, "iss"); err == nil {
		t.Error("expected error for empty subject, got nil")
	}
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	key := "key"
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "c",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, _ := token.SignedString([]byte(key))

	if _, err := ValidateAndParseJWTToken(signed, key, "iss"); err == nil {
		t.Error("expected error for HS512 token, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("real-issuer", "c", time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer abc", "abc", false},
		{"  Bearer   abc  ", "abc", false},
		{"Bearer", "", true},
		{"Basic abc", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
