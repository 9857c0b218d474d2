package user

import (
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	pw := "supersecret"
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == pw {
		t.Errorf("hash must not equal the plaintext password")
	}
	if err := CheckPassword(hash, pw); err != nil {
		t.Errorf("CheckPassword rejected the correct password: %v", err)
	}
	if err := CheckPassword(hash, "wrongpassword"); err == nil {
		t.Errorf("CheckPassword accepted a wrong password")
	}
}
