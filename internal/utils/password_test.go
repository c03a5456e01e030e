package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secreta123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secreta123" {
		t.Fatal("hash equals the plaintext")
	}
	if !VerifyPassword(hash, "secreta123") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "otra") {
		t.Fatal("wrong password accepted")
	}
}
