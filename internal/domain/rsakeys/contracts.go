package rsakeys

import (
	"context"
	"math/big"
)

// RSAProcessor performs key derivation and the modular exponentiation based
// encrypt/decrypt operations.
type RSAProcessor interface {
	// DeriveKeys computes n = p*q, phi(n) = (p-1)(q-1) and d = e^-1 mod phi(n).
	// Primality of p and q is the caller's responsibility.
	// Returns a *KeyDerivationError when e and phi(n) are not coprime.
	DeriveKeys(p, q, e *big.Int) (*PublicKey, *PrivateKey, error)

	// Encrypt returns m^e mod n, or a *MessageTooLargeError when m is outside [0, n).
	Encrypt(m *big.Int, publicKey *PublicKey) (*big.Int, error)

	// Decrypt returns c^d mod n.
	Decrypt(c *big.Int, privateKey *PrivateKey) (*big.Int, error)

	// EncryptBlocks validates every block, then encrypts them concurrently.
	// The result preserves input order; on error no ciphertext is returned.
	EncryptBlocks(ctx context.Context, blocks []*big.Int, publicKey *PublicKey) ([]*big.Int, error)

	// DecryptBlocks decrypts blocks concurrently, preserving input order.
	DecryptBlocks(ctx context.Context, blocks []*big.Int, privateKey *PrivateKey) ([]*big.Int, error)
}

// PrimeSource supplies the two primes key derivation starts from.
type PrimeSource interface {
	Primes(ctx context.Context) (p, q *big.Int, err error)
}

// PaddingScheme transforms a message before it is split into blocks and
// reverses the transformation after decryption.
type PaddingScheme interface {
	Pad(message []byte, publicKey *PublicKey) ([]byte, error)
	Unpad(message []byte, publicKey *PublicKey) ([]byte, error)
}

// BlockCodec maps an octet string to numeric blocks in [0, n) and back.
type BlockCodec interface {
	Name() string
	Encode(message []byte, publicKey *PublicKey) ([]*big.Int, error)
	Decode(blocks []*big.Int, publicKey *PublicKey) ([]byte, error)
}

// KeyPairRepository defines the persistence operations for derived key pairs
type KeyPairRepository interface {
	Create(ctx context.Context, keyPair *KeyPair) error
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPair, error)
	GetByID(ctx context.Context, keyPairID string) (*KeyPair, error)
	DeleteByID(ctx context.Context, keyPairID string) error
}

// KeyPairService derives key pairs and manages the stored ones.
type KeyPairService interface {
	// Derive obtains primes from source, derives a key pair with exponent e and stores it.
	Derive(ctx context.Context, source PrimeSource, e *big.Int) (*KeyPair, error)

	// List retrieves stored key pairs considering a query filter when set.
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPair, error)

	// GetByID retrieves a stored key pair by its unique ID.
	GetByID(ctx context.Context, keyPairID string) (*KeyPair, error)

	// DeleteByID removes a stored key pair.
	DeleteByID(ctx context.Context, keyPairID string) error
}

// CipherService encrypts and decrypts text with a stored key pair.
type CipherService interface {
	// EncryptText pads and encodes text with the named codec and encrypts every block.
	EncryptText(ctx context.Context, keyPairID, text, codec string) ([]*big.Int, error)

	// DecryptText decrypts the blocks, decodes them with the named codec and removes padding.
	DecryptText(ctx context.Context, keyPairID string, blocks []*big.Int, codec string) (string, error)
}
