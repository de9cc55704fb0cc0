package rsakeys

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidArgument reports an operand outside the domain of an operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrModulusTooSmall reports a modulus too short for the selected block codec.
	ErrModulusTooSmall = errors.New("modulus too small for codec")

	// ErrMalformedBlock reports a decrypted block the codec cannot map back to bytes.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrKeyPairNotFound reports an unknown key pair id.
	ErrKeyPairNotFound = errors.New("key pair not found")
)

// KeyDerivationError reports a public exponent that is not coprime to phi(n).
// Retrying with the same inputs fails identically.
type KeyDerivationError struct {
	E   *big.Int
	Phi *big.Int
	GCD *big.Int
}

func (e *KeyDerivationError) Error() string {
	return fmt.Sprintf("key derivation failed: exponent %s is not coprime to phi(n) %s (gcd %s)", e.E, e.Phi, e.GCD)
}

// MessageTooLargeError reports a plaintext block outside [0, n).
// Index is the position of the block in its batch, or -1 for a single block.
type MessageTooLargeError struct {
	Index   int
	Block   *big.Int
	Modulus *big.Int
}

func (e *MessageTooLargeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("message %s is outside [0, %s)", e.Block, e.Modulus)
	}
	return fmt.Sprintf("block %d: message %s is outside [0, %s)", e.Index, e.Block, e.Modulus)
}
