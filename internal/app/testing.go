//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/persistence"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyPairService rsakeys.KeyPairService
	CipherService  rsakeys.CipherService

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	processor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err, "Failed to create RSA processor")

	keyPairService, err := NewKeyPairService(processor, dbContext.KeyPairRepo, logger)
	require.NoError(t, err, "Failed to create key pair service")

	cipherService, err := NewCipherService(processor, dbContext.KeyPairRepo, cryptography.NoPadding{}, cryptography.NewBlockCodec, logger)
	require.NoError(t, err, "Failed to create cipher service")

	return &TestServices{
		KeyPairService: keyPairService,
		CipherService:  cipherService,
		DBContext:      dbContext,
	}
}
