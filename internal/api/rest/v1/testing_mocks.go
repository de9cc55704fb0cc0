//go:build unit
// +build unit

package v1

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"

	"github.com/stretchr/testify/mock"
)

// MockKeyPairService is a mock implementation of KeyPairService
type MockKeyPairService struct {
	mock.Mock
}

func (m *MockKeyPairService) Derive(ctx context.Context, source rsakeys.PrimeSource, e *big.Int) (*rsakeys.KeyPair, error) {
	args := m.Called(ctx, source, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsakeys.KeyPair), args.Error(1)
}

func (m *MockKeyPairService) List(ctx context.Context, query *rsakeys.KeyPairQuery) ([]*rsakeys.KeyPair, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rsakeys.KeyPair), args.Error(1)
}

func (m *MockKeyPairService) GetByID(ctx context.Context, keyPairID string) (*rsakeys.KeyPair, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsakeys.KeyPair), args.Error(1)
}

func (m *MockKeyPairService) DeleteByID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}

// MockCipherService is a mock implementation of CipherService
type MockCipherService struct {
	mock.Mock
}

func (m *MockCipherService) EncryptText(ctx context.Context, keyPairID, text, codec string) ([]*big.Int, error) {
	args := m.Called(ctx, keyPairID, text, codec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*big.Int), args.Error(1)
}

func (m *MockCipherService) DecryptText(ctx context.Context, keyPairID string, blocks []*big.Int, codec string) (string, error) {
	args := m.Called(ctx, keyPairID, blocks, codec)
	return args.String(0), args.Error(1)
}
