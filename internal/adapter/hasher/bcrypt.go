package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements ports.PasswordHasher on top of golang.org/x/crypto.
type Bcrypt struct {
	cost int
}

// NewBcrypt builds a hasher. cost <= 0 uses bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
