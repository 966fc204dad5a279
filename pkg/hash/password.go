package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher provides hashing logic to securely store secrets. The same
// hasher covers passwords, PINs and one-time codes: every Hash call salts
// independently, so equal inputs never produce equal digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}

	return string(digest), nil
}

func (h *BcryptHasher) Compare(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
