//go:build unit
// +build unit

package app

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"

	"github.com/stretchr/testify/mock"
)

// MockKeyPairRepository is a mock implementation of rsakeys.KeyPairRepository
type MockKeyPairRepository struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockKeyPairRepository) Create(ctx context.Context, keyPair *rsakeys.KeyPair) error {
	args := m.Called(ctx, keyPair)
	return args.Error(0)
}

// List mocks the List method
func (m *MockKeyPairRepository) List(ctx context.Context, query *rsakeys.KeyPairQuery) ([]*rsakeys.KeyPair, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rsakeys.KeyPair), args.Error(1)
}

// GetByID mocks the GetByID method
func (m *MockKeyPairRepository) GetByID(ctx context.Context, keyPairID string) (*rsakeys.KeyPair, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsakeys.KeyPair), args.Error(1)
}

// DeleteByID mocks the DeleteByID method
func (m *MockKeyPairRepository) DeleteByID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}

// MockPrimeSource is a mock implementation of rsakeys.PrimeSource
type MockPrimeSource struct {
	mock.Mock
}

// Primes mocks the Primes method
func (m *MockPrimeSource) Primes(ctx context.Context) (*big.Int, *big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*big.Int), args.Get(1).(*big.Int), args.Error(2)
}
