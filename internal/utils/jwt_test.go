package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	ttlMin := 90
	before := time.Now().UTC()
	tok, err := NewAccessToken("secreto", 7, "ADMIN", ttlMin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	wantExp := before.Add(time.Duration(ttlMin) * time.Minute)
	if tok.Exp.Before(wantExp) || tok.Exp.After(wantExp.Add(5*time.Second)) {
		t.Fatalf("exp = %v, want ~%v", tok.Exp, wantExp)
	}

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secreto"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse back: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != float64(7) {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["role"] != "ADMIN" {
		t.Errorf("role = %v", claims["role"])
	}
	if claims["exp"] != float64(tok.Exp.Unix()) {
		t.Errorf("exp claim = %v, want %d", claims["exp"], tok.Exp.Unix())
	}
}
