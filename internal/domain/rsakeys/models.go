package rsakeys

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
)

// PublicKey holds the modulus n and the public exponent e.
// Fields are unexported so a key cannot change after construction; accessors return copies.
type PublicKey struct {
	n *big.Int
	e *big.Int
}

// NewPublicKey creates a PublicKey from copies of n and e
func NewPublicKey(n, e *big.Int) *PublicKey {
	return &PublicKey{n: clone(n), e: clone(e)}
}

// N returns a copy of the modulus
func (k *PublicKey) N() *big.Int { return clone(k.n) }

// E returns a copy of the public exponent
func (k *PublicKey) E() *big.Int { return clone(k.e) }

// Validate checks that the key can be used for encryption
func (k *PublicKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: public key cannot be nil", ErrInvalidArgument)
	}
	if k.n == nil || k.n.Cmp(two) < 0 {
		return fmt.Errorf("%w: modulus must be at least 2", ErrInvalidArgument)
	}
	if k.e == nil || k.e.Sign() <= 0 {
		return fmt.Errorf("%w: public exponent must be positive", ErrInvalidArgument)
	}
	return nil
}

// PrivateKey holds the modulus n and the private exponent d.
type PrivateKey struct {
	n *big.Int
	d *big.Int
}

// NewPrivateKey creates a PrivateKey from copies of n and d
func NewPrivateKey(n, d *big.Int) *PrivateKey {
	return &PrivateKey{n: clone(n), d: clone(d)}
}

// N returns a copy of the modulus
func (k *PrivateKey) N() *big.Int { return clone(k.n) }

// D returns a copy of the private exponent
func (k *PrivateKey) D() *big.Int { return clone(k.d) }

// Validate checks that the key can be used for decryption
func (k *PrivateKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: private key cannot be nil", ErrInvalidArgument)
	}
	if k.n == nil || k.n.Cmp(two) < 0 {
		return fmt.Errorf("%w: modulus must be at least 2", ErrInvalidArgument)
	}
	if k.d == nil || k.d.Sign() < 0 {
		return fmt.Errorf("%w: private exponent must not be negative", ErrInvalidArgument)
	}
	return nil
}

// KeyPair entity
type KeyPair struct {
	ID              string      `validate:"required,uuid4"`
	Public          *PublicKey  `validate:"required"`
	Private         *PrivateKey `validate:"required"`
	DateTimeCreated time.Time   `validate:"required"`
}

// Validate for validating KeyPair struct
func (kp *KeyPair) Validate() error {
	validate := validator.New()

	err := validate.Struct(kp)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if err := kp.Public.Validate(); err != nil {
		return err
	}
	if err := kp.Private.Validate(); err != nil {
		return err
	}
	if kp.Public.n.Cmp(kp.Private.n) != 0 {
		return fmt.Errorf("%w: public and private modulus differ", ErrInvalidArgument)
	}

	return nil
}

// KeyPairQuery filters and pages key pair listings
type KeyPairQuery struct {
	DateTimeCreated time.Time `validate:"omitempty"`
	Limit           int       `validate:"omitempty,min=1,max=1000"`
	Offset          int       `validate:"omitempty,min=0"`
	SortBy          string    `validate:"omitempty,oneof=id date_time_created"`
	SortOrder       string    `validate:"omitempty,oneof=asc desc"`
}

// Validate for validating KeyPairQuery struct
func (q *KeyPairQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

var two = big.NewInt(2)

func clone(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
