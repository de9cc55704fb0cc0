//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendedGCD(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		gcd  int64
	}{
		{"reference exponent", 65537, 3120, 1},
		{"reduced exponent", 17, 3120, 1},
		{"common factor", 240, 46, 2},
		{"a divides b", 6, 18, 6},
		{"zero first operand", 0, 7, 7},
		{"zero second operand", 7, 0, 7},
		{"equal operands", 9, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := big.NewInt(tt.a), big.NewInt(tt.b)

			gcd, x, y := ExtendedGCD(a, b)
			assert.Equal(t, tt.gcd, gcd.Int64())

			// a*x + b*y = gcd
			lhs := new(big.Int).Mul(a, x)
			lhs.Add(lhs, new(big.Int).Mul(b, y))
			assert.Equal(t, 0, lhs.Cmp(gcd))

			assert.Equal(t, tt.a, a.Int64(), "operand a was modified")
			assert.Equal(t, tt.b, b.Int64(), "operand b was modified")
		})
	}
}

func TestExtendedGCD_ZeroBaseCase(t *testing.T) {
	gcd, x, y := ExtendedGCD(big.NewInt(0), big.NewInt(3120))
	assert.Equal(t, int64(3120), gcd.Int64())
	assert.Equal(t, int64(0), x.Int64())
	assert.Equal(t, int64(1), y.Int64())
}

func TestModInverse(t *testing.T) {
	d, err := ModInverse(big.NewInt(65537), big.NewInt(3120))
	require.NoError(t, err)
	assert.Equal(t, int64(2753), d.Int64())

	d, err = ModInverse(big.NewInt(17), big.NewInt(3120))
	require.NoError(t, err)
	assert.Equal(t, int64(2753), d.Int64())
}

func TestModInverse_Correctness(t *testing.T) {
	for _, phiValue := range []int64{3120, 1000, 97, 2} {
		phi := big.NewInt(phiValue)
		for eValue := int64(1); eValue < 400; eValue++ {
			e := big.NewInt(eValue)
			coprime := new(big.Int).GCD(nil, nil, e, phi).Cmp(bigOne) == 0

			d, err := ModInverse(e, phi)
			if !coprime {
				var derivationErr *rsakeys.KeyDerivationError
				require.True(t, errors.As(err, &derivationErr), "e=%d phi=%d", eValue, phiValue)
				assert.Nil(t, d)
				continue
			}

			require.NoError(t, err, "e=%d phi=%d", eValue, phiValue)
			assert.True(t, d.Sign() >= 0 && d.Cmp(phi) < 0, "d=%s outside [0, %d)", d, phiValue)

			product := new(big.Int).Mul(e, d)
			assert.Equal(t, int64(1), product.Mod(product, phi).Int64(), "e=%d phi=%d", eValue, phiValue)
		}
	}
}

func TestModInverse_NotCoprime(t *testing.T) {
	_, err := ModInverse(big.NewInt(2), big.NewInt(3120))
	require.Error(t, err)

	var derivationErr *rsakeys.KeyDerivationError
	require.ErrorAs(t, err, &derivationErr)
	assert.Equal(t, int64(2), derivationErr.GCD.Int64())
	assert.Equal(t, int64(3120), derivationErr.Phi.Int64())
}

func TestModInverse_InvalidArguments(t *testing.T) {
	_, err := ModInverse(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)

	_, err = ModInverse(big.NewInt(3), big.NewInt(-7))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)

	_, err = ModInverse(nil, big.NewInt(7))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)
}

func TestModExp(t *testing.T) {
	tests := []struct {
		name                   string
		base, exponent, modulo int64
		expected               int64
	}{
		{"reference encryption", 65, 17, 3233, 2790},
		{"reference encryption full exponent", 65, 65537, 3233, 2790},
		{"reference decryption", 2790, 2753, 3233, 65},
		{"zero exponent", 12345, 0, 3233, 1},
		{"zero exponent zero base", 0, 0, 7, 1},
		{"modulus one", 12345, 17, 1, 0},
		{"modulus one zero exponent", 12345, 0, 1, 0},
		{"base larger than modulus", 3300, 1, 3233, 67},
		{"negative base", -2, 3, 5, 2},
		{"zero base", 0, 5, 13, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ModExp(big.NewInt(tt.base), big.NewInt(tt.exponent), big.NewInt(tt.modulo))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Int64())
		})
	}
}

func TestModExp_MatchesLibrary(t *testing.T) {
	modulus := big.NewInt(1000036000099)
	exponent := big.NewInt(983264276609)

	for i := int64(0); i < 200; i++ {
		base := big.NewInt(i*7919 + 3)
		result, err := ModExp(base, exponent, modulus)
		require.NoError(t, err)

		expected := new(big.Int).Exp(base, exponent, modulus)
		assert.Equal(t, 0, expected.Cmp(result), "base=%s", base)
	}
}

func TestModExp_DoesNotModifyOperands(t *testing.T) {
	base, exponent, modulus := big.NewInt(4000), big.NewInt(17), big.NewInt(3233)

	_, err := ModExp(base, exponent, modulus)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), base.Int64())
	assert.Equal(t, int64(17), exponent.Int64())
	assert.Equal(t, int64(3233), modulus.Int64())
}

func TestModExp_InvalidArguments(t *testing.T) {
	_, err := ModExp(big.NewInt(2), big.NewInt(-1), big.NewInt(7))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)

	_, err = ModExp(big.NewInt(2), big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)

	_, err = ModExp(big.NewInt(2), big.NewInt(3), big.NewInt(-7))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)

	_, err = ModExp(nil, big.NewInt(3), big.NewInt(7))
	assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)
}
