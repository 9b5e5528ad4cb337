package security

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes account passwords with bcrypt. The cost comes from
// configuration (BCRYPT_ROUNDS) so environments can trade latency for
// hardness.
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
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hashed), err
}

// Compare returns nil only when password matches hash. The error is opaque
// on purpose; callers map any failure to the invalid-credentials path.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
