package cryptography

import (
	"context"
	"fmt"
	"math/big"
	"runtime"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (rsakeys.RSAProcessor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// DeriveKeys computes the modulus, the totient and the private exponent from p, q and e.
// Primality and size of p and q are not checked.
func (r *rsaProcessor) DeriveKeys(p, q, e *big.Int) (*rsakeys.PublicKey, *rsakeys.PrivateKey, error) {
	if p == nil || q == nil || e == nil {
		return nil, nil, fmt.Errorf("%w: primes and exponent are required", rsakeys.ErrInvalidArgument)
	}
	if p.Cmp(bigTwo) < 0 || q.Cmp(bigTwo) < 0 {
		return nil, nil, fmt.Errorf("%w: primes must be at least 2", rsakeys.ErrInvalidArgument)
	}
	if e.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: public exponent must be positive", rsakeys.ErrInvalidArgument)
	}

	n := new(big.Int).Mul(p, q)
	phi := totient(p, q)

	d, err := ModInverse(e, phi)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive RSA keys: %w", err)
	}

	// e*d - 1 must be a multiple of phi(n)
	check := new(big.Int).Mul(e, d)
	check.Sub(check, bigOne)
	if check.Mod(check, phi).Sign() != 0 {
		return nil, nil, &rsakeys.KeyDerivationError{E: new(big.Int).Set(e), Phi: phi, GCD: new(big.Int).GCD(nil, nil, e, phi)}
	}

	r.logger.Info("Derived RSA key pair with ", n.BitLen(), "-bit modulus")
	return rsakeys.NewPublicKey(n, e), rsakeys.NewPrivateKey(n, d), nil
}

// Encrypt computes m^e mod n. m must lie in [0, n); nothing is computed otherwise.
func (r *rsaProcessor) Encrypt(m *big.Int, publicKey *rsakeys.PublicKey) (*big.Int, error) {
	if err := publicKey.Validate(); err != nil {
		return nil, err
	}
	n := publicKey.N()
	if err := checkPlaintext(-1, m, n); err != nil {
		return nil, err
	}

	return ModExp(m, publicKey.E(), n)
}

// Decrypt computes c^d mod n.
func (r *rsaProcessor) Decrypt(c *big.Int, privateKey *rsakeys.PrivateKey) (*big.Int, error) {
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: ciphertext cannot be nil", rsakeys.ErrInvalidArgument)
	}

	return ModExp(c, privateKey.D(), privateKey.N())
}

// EncryptBlocks checks every block against the modulus before encrypting any of them.
func (r *rsaProcessor) EncryptBlocks(ctx context.Context, blocks []*big.Int, publicKey *rsakeys.PublicKey) ([]*big.Int, error) {
	if err := publicKey.Validate(); err != nil {
		return nil, err
	}
	n := publicKey.N()
	for i, m := range blocks {
		if err := checkPlaintext(i, m, n); err != nil {
			return nil, err
		}
	}

	out, err := exponentiateBlocks(ctx, blocks, publicKey.E(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt blocks: %w", err)
	}

	r.logger.Info("RSA encryption succeeded for ", len(blocks), " blocks")
	return out, nil
}

// DecryptBlocks decrypts every block with the private exponent.
func (r *rsaProcessor) DecryptBlocks(ctx context.Context, blocks []*big.Int, privateKey *rsakeys.PrivateKey) ([]*big.Int, error) {
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}
	for i, c := range blocks {
		if c == nil {
			return nil, fmt.Errorf("%w: block %d is nil", rsakeys.ErrInvalidArgument, i)
		}
	}

	out, err := exponentiateBlocks(ctx, blocks, privateKey.D(), privateKey.N())
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt blocks: %w", err)
	}

	r.logger.Info("RSA decryption succeeded for ", len(blocks), " blocks")
	return out, nil
}

func checkPlaintext(index int, m, n *big.Int) error {
	if m == nil {
		if index < 0 {
			return fmt.Errorf("%w: message cannot be nil", rsakeys.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: block %d is nil", rsakeys.ErrInvalidArgument, index)
	}
	if m.Sign() < 0 || m.Cmp(n) >= 0 {
		return &rsakeys.MessageTooLargeError{Index: index, Block: new(big.Int).Set(m), Modulus: n}
	}
	return nil
}

// exponentiateBlocks raises every block to exponent mod modulus. Blocks are
// independent, so they are processed concurrently; each result is written to
// the index of its input.
func exponentiateBlocks(ctx context.Context, blocks []*big.Int, exponent, modulus *big.Int) ([]*big.Int, error) {
	out := make([]*big.Int, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := ModExp(block, exponent, modulus)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
