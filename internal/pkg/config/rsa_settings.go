package config

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Codec names accepted by RSASettings.Codec
const (
	CodecByte  = validators.CodecByte
	CodecOctet = validators.CodecOctet
)

// Defaults used by the demonstration run. They are small enough to be factored by hand.
const (
	DefaultPrimeP         = "61"
	DefaultPrimeQ         = "53"
	DefaultPublicExponent = "65537"
)

// RSASettings holds the inputs of key derivation and the message codec selection.
// Either both primes or RandomPrimeBits must be set.
type RSASettings struct {
	P               string `mapstructure:"p" validate:"omitempty,number"`
	Q               string `mapstructure:"q" validate:"omitempty,number"`
	PublicExponent  string `mapstructure:"public_exponent" validate:"required,number"`
	Codec           string `mapstructure:"codec" validate:"required,codec"`
	RandomPrimeBits int    `mapstructure:"random_prime_bits" validate:"omitempty,min=8,max=4096"`
}

// DefaultRSASettings returns the settings of the reference demonstration
func DefaultRSASettings() RSASettings {
	return RSASettings{
		P:              DefaultPrimeP,
		Q:              DefaultPrimeQ,
		PublicExponent: DefaultPublicExponent,
		Codec:          CodecByte,
	}
}

// Validate checks that all fields in RSASettings are valid
func (s *RSASettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("codec", validators.CodecValidation); err != nil {
		return fmt.Errorf("failed to register codec validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RSASettings: %w", err)
	}

	if s.RandomPrimeBits == 0 && (s.P == "" || s.Q == "") {
		return fmt.Errorf("either both primes or random prime bits must be configured")
	}

	return nil
}

// Primes parses the configured primes
func (s *RSASettings) Primes() (*big.Int, *big.Int, error) {
	p, err := parseInt("p", s.P)
	if err != nil {
		return nil, nil, err
	}
	q, err := parseInt("q", s.Q)
	if err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

// Exponent parses the configured public exponent
func (s *RSASettings) Exponent() (*big.Int, error) {
	return parseInt("public exponent", s.PublicExponent)
}

func parseInt(name, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q: not a decimal integer", name, value)
	}
	return v, nil
}
