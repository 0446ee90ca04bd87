package accounts

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is injected at construction so the directory never depends
// on a global hashing singleton.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Matches(raw, hashed string) bool
}

// BcryptHasher hashes with bcrypt at the default cost.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Matches(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
