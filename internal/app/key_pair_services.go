package app

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyPairService implements the KeyPairService interface
type keyPairService struct {
	rsaProcessor rsakeys.RSAProcessor
	keyPairRepo  rsakeys.KeyPairRepository
	logger       logger.Logger
}

// NewKeyPairService creates a new keyPairService instance
func NewKeyPairService(rsaProcessor rsakeys.RSAProcessor, keyPairRepo rsakeys.KeyPairRepository, logger logger.Logger) (rsakeys.KeyPairService, error) {
	if rsaProcessor == nil || keyPairRepo == nil || logger == nil {
		return nil, fmt.Errorf("processor, repository and logger are required")
	}
	return &keyPairService{
		rsaProcessor: rsaProcessor,
		keyPairRepo:  keyPairRepo,
		logger:       logger,
	}, nil
}

// Derive obtains two primes from source, derives a key pair and stores it.
// Nothing is stored when derivation fails.
func (s *keyPairService) Derive(ctx context.Context, source rsakeys.PrimeSource, e *big.Int) (*rsakeys.KeyPair, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: prime source cannot be nil", rsakeys.ErrInvalidArgument)
	}

	p, q, err := source.Primes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain primes: %w", err)
	}

	publicKey, privateKey, err := s.rsaProcessor.DeriveKeys(p, q, e)
	if err != nil {
		return nil, err
	}

	keyPair := &rsakeys.KeyPair{
		ID:              uuid.NewString(),
		Public:          publicKey,
		Private:         privateKey,
		DateTimeCreated: time.Now().UTC(),
	}

	if err := s.keyPairRepo.Create(ctx, keyPair); err != nil {
		return nil, fmt.Errorf("failed to store key pair: %w", err)
	}

	s.logger.Info("Stored key pair ", keyPair.ID)
	return keyPair, nil
}

// List retrieves stored key pairs considering a query filter when set.
func (s *keyPairService) List(ctx context.Context, query *rsakeys.KeyPairQuery) ([]*rsakeys.KeyPair, error) {
	keyPairs, err := s.keyPairRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list key pairs: %w", err)
	}
	return keyPairs, nil
}

// GetByID retrieves a stored key pair by its unique ID.
func (s *keyPairService) GetByID(ctx context.Context, keyPairID string) (*rsakeys.KeyPair, error) {
	keyPair, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair: %w", err)
	}
	return keyPair, nil
}

// DeleteByID removes a stored key pair.
func (s *keyPairService) DeleteByID(ctx context.Context, keyPairID string) error {
	if err := s.keyPairRepo.DeleteByID(ctx, keyPairID); err != nil {
		return fmt.Errorf("failed to delete key pair: %w", err)
	}
	s.logger.Info("Deleted key pair ", keyPairID)
	return nil
}
