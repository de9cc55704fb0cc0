package app

import (
	"context"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"
)

// CodecResolver returns the block codec registered under a name
type CodecResolver func(name string) (rsakeys.BlockCodec, error)

// cipherService implements the CipherService interface
type cipherService struct {
	rsaProcessor rsakeys.RSAProcessor
	keyPairRepo  rsakeys.KeyPairRepository
	padding      rsakeys.PaddingScheme
	resolveCodec CodecResolver
	logger       logger.Logger
}

// NewCipherService creates a new cipherService instance
func NewCipherService(
	rsaProcessor rsakeys.RSAProcessor,
	keyPairRepo rsakeys.KeyPairRepository,
	padding rsakeys.PaddingScheme,
	resolveCodec CodecResolver,
	logger logger.Logger,
) (rsakeys.CipherService, error) {
	if rsaProcessor == nil || keyPairRepo == nil || logger == nil {
		return nil, fmt.Errorf("processor, repository and logger are required")
	}
	if padding == nil || resolveCodec == nil {
		return nil, fmt.Errorf("padding scheme and codec resolver are required")
	}
	return &cipherService{
		rsaProcessor: rsaProcessor,
		keyPairRepo:  keyPairRepo,
		padding:      padding,
		resolveCodec: resolveCodec,
		logger:       logger,
	}, nil
}

// EncryptText pads and encodes text, then encrypts every block with the stored public key.
func (s *cipherService) EncryptText(ctx context.Context, keyPairID, text, codecName string) ([]*big.Int, error) {
	codec, err := s.resolveCodec(codecName)
	if err != nil {
		return nil, err
	}

	keyPair, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair: %w", err)
	}

	padded, err := s.padding.Pad([]byte(text), keyPair.Public)
	if err != nil {
		return nil, fmt.Errorf("failed to pad message: %w", err)
	}

	blocks, err := codec.Encode(padded, keyPair.Public)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	ciphertext, err := s.rsaProcessor.EncryptBlocks(ctx, blocks, keyPair.Public)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Encrypted ", len(ciphertext), " ", codec.Name(), " blocks with key pair ", keyPairID)
	return ciphertext, nil
}

// DecryptText decrypts the blocks with the stored private key, then decodes and unpads them.
func (s *cipherService) DecryptText(ctx context.Context, keyPairID string, blocks []*big.Int, codecName string) (string, error) {
	codec, err := s.resolveCodec(codecName)
	if err != nil {
		return "", err
	}

	keyPair, err := s.keyPairRepo.GetByID(ctx, keyPairID)
	if err != nil {
		return "", fmt.Errorf("failed to get key pair: %w", err)
	}

	plaintext, err := s.rsaProcessor.DecryptBlocks(ctx, blocks, keyPair.Private)
	if err != nil {
		return "", err
	}

	message, err := codec.Decode(plaintext, keyPair.Public)
	if err != nil {
		return "", fmt.Errorf("failed to decode message: %w", err)
	}

	unpadded, err := s.padding.Unpad(message, keyPair.Public)
	if err != nil {
		return "", fmt.Errorf("failed to unpad message: %w", err)
	}

	s.logger.Info("Decrypted ", len(blocks), " ", codec.Name(), " blocks with key pair ", keyPairID)
	return string(unpadded), nil
}
