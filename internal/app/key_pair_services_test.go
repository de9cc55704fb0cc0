//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupKeyPairService(t *testing.T) (rsakeys.KeyPairService, *MockKeyPairRepository) {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)

	repo := new(MockKeyPairRepository)
	service, err := NewKeyPairService(processor, repo, logger)
	require.NoError(t, err)

	return service, repo
}

func referenceSource(t *testing.T) rsakeys.PrimeSource {
	t.Helper()
	source, err := cryptography.NewStaticPrimeSource(big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)
	return source
}

func TestNewKeyPairService_MissingDependencies(t *testing.T) {
	_, err := NewKeyPairService(nil, new(MockKeyPairRepository), nil)
	assert.Error(t, err)
}

func TestKeyPairService_Derive(t *testing.T) {
	t.Run("stores derived reference key pair", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*rsakeys.KeyPair")).Return(nil)

		keyPair, err := service.Derive(context.Background(), referenceSource(t), big.NewInt(65537))
		require.NoError(t, err)

		_, err = uuid.Parse(keyPair.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3233), keyPair.Public.N().Int64())
		assert.Equal(t, int64(65537), keyPair.Public.E().Int64())
		assert.Equal(t, int64(2753), keyPair.Private.D().Int64())
		assert.False(t, keyPair.DateTimeCreated.IsZero())
		assert.NoError(t, keyPair.Validate())
		repo.AssertExpectations(t)
	})

	t.Run("exponent sharing a factor with phi is not stored", func(t *testing.T) {
		service, repo := setupKeyPairService(t)

		_, err := service.Derive(context.Background(), referenceSource(t), big.NewInt(3))
		require.Error(t, err)

		var derivationErr *rsakeys.KeyDerivationError
		require.True(t, errors.As(err, &derivationErr))
		assert.Equal(t, int64(3), derivationErr.GCD.Int64())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("prime source failure", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		source := new(MockPrimeSource)
		source.On("Primes", mock.Anything).Return(nil, nil, errors.New("entropy exhausted"))

		_, err := service.Derive(context.Background(), source, big.NewInt(65537))
		assert.ErrorContains(t, err, "entropy exhausted")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("nil prime source", func(t *testing.T) {
		service, _ := setupKeyPairService(t)

		_, err := service.Derive(context.Background(), nil, big.NewInt(65537))
		assert.ErrorIs(t, err, rsakeys.ErrInvalidArgument)
	})

	t.Run("repository failure", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		keyPair, err := service.Derive(context.Background(), referenceSource(t), big.NewInt(65537))
		assert.Nil(t, keyPair)
		assert.ErrorContains(t, err, "failed to store key pair")
	})
}

func TestKeyPairService_Lookups(t *testing.T) {
	n := big.NewInt(3233)
	stored := &rsakeys.KeyPair{
		ID:      uuid.NewString(),
		Public:  rsakeys.NewPublicKey(n, big.NewInt(65537)),
		Private: rsakeys.NewPrivateKey(n, big.NewInt(2753)),
	}

	t.Run("GetByID", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)

		keyPair, err := service.GetByID(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, keyPair.ID)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("GetByID", mock.Anything, "missing").Return(nil, rsakeys.ErrKeyPairNotFound)

		_, err := service.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, rsakeys.ErrKeyPairNotFound)
	})

	t.Run("List", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		query := &rsakeys.KeyPairQuery{Limit: 10}
		repo.On("List", mock.Anything, query).Return([]*rsakeys.KeyPair{stored}, nil)

		keyPairs, err := service.List(context.Background(), query)
		require.NoError(t, err)
		assert.Len(t, keyPairs, 1)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("DeleteByID", mock.Anything, stored.ID).Return(nil)

		require.NoError(t, service.DeleteByID(context.Background(), stored.ID))
		repo.AssertExpectations(t)
	})

	t.Run("DeleteByID not found", func(t *testing.T) {
		service, repo := setupKeyPairService(t)
		repo.On("DeleteByID", mock.Anything, "missing").Return(rsakeys.ErrKeyPairNotFound)

		err := service.DeleteByID(context.Background(), "missing")
		assert.ErrorIs(t, err, rsakeys.ErrKeyPairNotFound)
	})
}
