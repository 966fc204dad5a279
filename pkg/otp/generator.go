package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces short numeric verification codes.
type Generator interface {
	RandomCode(length int) (string, error)
}

type randomGenerator struct{}

func NewRandomGenerator() Generator {
	return randomGenerator{}
}

// RandomCode draws uniformly from [10^(length-1), 10^length - 1], so the code
// always has exactly length digits and no leading zero.
func (randomGenerator) RandomCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("random draw failed: %w", err)
	}

	return n.Add(n, low).String(), nil
}
