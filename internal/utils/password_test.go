package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("table-for-two", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "table-for-two") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "table-for-four") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// A misconfigured BCRYPT_COST must not break registration.
	hash, err := HashPassword("table-for-two", 0)
	if err != nil {
		t.Fatalf("HashPassword with out-of-range cost: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", cost, bcrypt.DefaultCost)
	}
}
