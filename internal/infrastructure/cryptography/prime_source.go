package cryptography

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
)

// primalityRounds is the number of Miller-Rabin rounds ProbablyPrime runs.
const primalityRounds = 20

// StaticPrimeSource hands out a fixed pair of primes, e.g. the 61/53 pair of the demonstration.
type StaticPrimeSource struct {
	p *big.Int
	q *big.Int
}

// NewStaticPrimeSource checks that p and q are distinct probable primes.
func NewStaticPrimeSource(p, q *big.Int) (*StaticPrimeSource, error) {
	if p == nil || q == nil {
		return nil, fmt.Errorf("%w: both primes are required", rsakeys.ErrInvalidArgument)
	}
	if !p.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: p = %s is not prime", rsakeys.ErrInvalidArgument, p)
	}
	if !q.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: q = %s is not prime", rsakeys.ErrInvalidArgument, q)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: p and q must be distinct", rsakeys.ErrInvalidArgument)
	}
	return &StaticPrimeSource{p: new(big.Int).Set(p), q: new(big.Int).Set(q)}, nil
}

// Primes returns copies of the configured primes
func (s *StaticPrimeSource) Primes(_ context.Context) (*big.Int, *big.Int, error) {
	return new(big.Int).Set(s.p), new(big.Int).Set(s.q), nil
}

// RandomPrimeSource draws two distinct random primes of a fixed bit length.
type RandomPrimeSource struct {
	bits   int
	random io.Reader
}

// NewRandomPrimeSource creates a source backed by crypto/rand
func NewRandomPrimeSource(bits int) (*RandomPrimeSource, error) {
	return newRandomPrimeSource(bits, rand.Reader)
}

func newRandomPrimeSource(bits int, random io.Reader) (*RandomPrimeSource, error) {
	if bits < 8 {
		return nil, fmt.Errorf("%w: prime size must be at least 8 bits, got %d", rsakeys.ErrInvalidArgument, bits)
	}
	return &RandomPrimeSource{bits: bits, random: random}, nil
}

// Primes draws primes until two distinct ones are found
func (s *RandomPrimeSource) Primes(ctx context.Context) (*big.Int, *big.Int, error) {
	p, err := rand.Prime(s.random, s.bits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate prime p: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		q, err := rand.Prime(s.random, s.bits)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate prime q: %w", err)
		}
		if p.Cmp(q) != 0 {
			return p, q, nil
		}
	}
}
