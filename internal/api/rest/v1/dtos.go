package v1

import (
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// DeriveKeyPairRequest carries either both primes or a random prime size.
// Integers are decimal strings so they are not limited to 64 bits.
type DeriveKeyPairRequest struct {
	P              string `json:"p" validate:"omitempty,number"`
	Q              string `json:"q" validate:"omitempty,number"`
	Bits           int    `json:"bits" validate:"omitempty,min=8,max=4096"`
	PublicExponent string `json:"e" validate:"required,number"`
}

// Validate checks the field rules and that exactly one prime source is requested
func (r *DeriveKeyPairRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	hasPrimes := r.P != "" && r.Q != ""
	switch {
	case (r.P != "") != (r.Q != ""):
		return fmt.Errorf("p and q must be set together")
	case hasPrimes && r.Bits != 0:
		return fmt.Errorf("primes and bits are mutually exclusive")
	case !hasPrimes && r.Bits == 0:
		return fmt.Errorf("either both primes or bits must be set")
	}
	return nil
}

// PrimeSource builds the prime source the request asks for
func (r *DeriveKeyPairRequest) PrimeSource() (rsakeys.PrimeSource, error) {
	if r.Bits != 0 {
		return cryptography.NewRandomPrimeSource(r.Bits)
	}

	p, err := parseDecimal("p", r.P)
	if err != nil {
		return nil, err
	}
	q, err := parseDecimal("q", r.Q)
	if err != nil {
		return nil, err
	}
	return cryptography.NewStaticPrimeSource(p, q)
}

// Exponent parses the public exponent
func (r *DeriveKeyPairRequest) Exponent() (*big.Int, error) {
	return parseDecimal("e", r.PublicExponent)
}

// KeyPairResponse exposes the public half of a stored key pair
type KeyPairResponse struct {
	ID              string    `json:"id"`
	Modulus         string    `json:"n"`
	PublicExponent  string    `json:"e"`
	ModulusBits     int       `json:"modulus_bits"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewKeyPairResponse maps a key pair without its private exponent
func NewKeyPairResponse(keyPair *rsakeys.KeyPair) KeyPairResponse {
	n := keyPair.Public.N()
	return KeyPairResponse{
		ID:              keyPair.ID,
		Modulus:         n.String(),
		PublicExponent:  keyPair.Public.E().String(),
		ModulusBits:     n.BitLen(),
		DateTimeCreated: keyPair.DateTimeCreated,
	}
}

// EncryptRequest carries the text to encrypt. An empty codec selects the server default.
type EncryptRequest struct {
	Message string `json:"message"`
	Codec   string `json:"codec" validate:"omitempty,codec"`
}

// Validate checks that the codec is supported
func (r *EncryptRequest) Validate() error {
	return validateWithCodec(r)
}

// EncryptResponse holds the ciphertext blocks as decimal strings
type EncryptResponse struct {
	KeyPairID string   `json:"key_pair_id"`
	Codec     string   `json:"codec"`
	Blocks    []string `json:"blocks"`
}

// DecryptRequest carries ciphertext blocks as decimal strings
type DecryptRequest struct {
	Blocks []string `json:"blocks" validate:"required,dive,number"`
	Codec  string   `json:"codec" validate:"omitempty,codec"`
}

// Validate checks that every block is a decimal integer and the codec is supported
func (r *DecryptRequest) Validate() error {
	return validateWithCodec(r)
}

// Ciphertext parses the blocks
func (r *DecryptRequest) Ciphertext() ([]*big.Int, error) {
	blocks := make([]*big.Int, len(r.Blocks))
	for i, block := range r.Blocks {
		v, err := parseDecimal(fmt.Sprintf("block %d", i), block)
		if err != nil {
			return nil, err
		}
		blocks[i] = v
	}
	return blocks, nil
}

// DecryptResponse holds the recovered text
type DecryptResponse struct {
	KeyPairID string `json:"key_pair_id"`
	Message   string `json:"message"`
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message
type InfoResponse struct {
	Message string `json:"message"`
}

func validateWithCodec(s any) error {
	validate := validator.New()
	if err := validate.RegisterValidation("codec", validators.CodecValidation); err != nil {
		return fmt.Errorf("failed to register codec validation: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func parseDecimal(name, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q is not a decimal integer", rsakeys.ErrInvalidArgument, name, value)
	}
	return v, nil
}

func formatBlocks(blocks []*big.Int) []string {
	out := make([]string, len(blocks))
	for i, block := range blocks {
		out[i] = block.String()
	}
	return out
}
