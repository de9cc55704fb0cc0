package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// ExtendedGCD returns gcd(a, b) together with Bezout coefficients x and y
// such that a*x + b*y = gcd. For a = 0 the result is (b, 0, 1).
// The operands are not modified.
func ExtendedGCD(a, b *big.Int) (gcd, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldX, curX := big.NewInt(1), big.NewInt(0)
	oldY, curY := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	rem := new(big.Int)
	tmp := new(big.Int)

	// a*oldX + b*oldY = oldR and a*curX + b*curY = r hold on every iteration.
	for r.Sign() != 0 {
		q.DivMod(oldR, r, rem)
		oldR, r = r, new(big.Int).Set(rem)

		tmp.Mul(q, curX)
		oldX, curX = curX, new(big.Int).Sub(oldX, tmp)

		tmp.Mul(q, curY)
		oldY, curY = curY, new(big.Int).Sub(oldY, tmp)
	}

	return oldR, oldX, oldY
}

// ModInverse returns d in [0, phi) with e*d = 1 (mod phi).
// A *rsakeys.KeyDerivationError is returned when gcd(e, phi) != 1.
func ModInverse(e, phi *big.Int) (*big.Int, error) {
	if e == nil || phi == nil {
		return nil, fmt.Errorf("%w: nil operand", rsakeys.ErrInvalidArgument)
	}
	if phi.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be positive", rsakeys.ErrInvalidArgument, phi)
	}

	gcd, x, _ := ExtendedGCD(e, phi)
	if gcd.Cmp(bigOne) != 0 {
		return nil, &rsakeys.KeyDerivationError{
			E:   new(big.Int).Set(e),
			Phi: new(big.Int).Set(phi),
			GCD: gcd,
		}
	}

	return x.Mod(x, phi), nil
}

// ModExp computes base^exponent mod modulus by square-and-multiply.
// The result lies in [0, modulus). exponent must be >= 0 and modulus > 0.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if base == nil || exponent == nil || modulus == nil {
		return nil, fmt.Errorf("%w: nil operand", rsakeys.ErrInvalidArgument)
	}
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be positive", rsakeys.ErrInvalidArgument, modulus)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent %s must not be negative", rsakeys.ErrInvalidArgument, exponent)
	}

	result := new(big.Int).Mod(bigOne, modulus)
	power := new(big.Int).Mod(base, modulus)

	// result * base^(remaining bits of exponent) = base^exponent (mod modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, power)
			result.Mod(result, modulus)
		}
		power.Mul(power, power)
		power.Mod(power, modulus)
	}

	return result, nil
}

func totient(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, bigOne)
	qMinusOne := new(big.Int).Sub(q, bigOne)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}
