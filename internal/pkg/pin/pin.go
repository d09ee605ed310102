package pin

import (
	"crypto/rand"
	"math/big"
)

const (
	pinMin   = 100000
	pinRange = 900000
)

// Generator produces one-time pins.
type Generator interface {
	Generate() (int32, error)
}

// SecureGenerator draws pins from crypto/rand, uniform in [100000, 999999].
type SecureGenerator struct{}

// NewSecureGenerator returns a crypto/rand backed pin generator.
func NewSecureGenerator() *SecureGenerator {
	return &SecureGenerator{}
}

// Generate returns a uniformly distributed six digit pin.
func (g *SecureGenerator) Generate() (int32, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinRange))
	if err != nil {
		return 0, err
	}
	return int32(n.Int64()) + pinMin, nil
}
