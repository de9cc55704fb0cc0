package commands

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/config"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for deriving key pairs via CLI.
type KeyCommandHandler struct {
	rsaProcessor rsakeys.RSAProcessor
	logger       logger.Logger
}

// NewKeyCommandHandler initializes a new KeyCommandHandler with logging and an RSA processor.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &KeyCommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// DeriveKeysCmd derives a key pair from the given or randomly drawn primes and prints it
func (commandHandler *KeyCommandHandler) DeriveKeysCmd(cmd *cobra.Command, _ []string) error {
	source, err := primeSourceFromFlags(cmd)
	if err != nil {
		return err
	}

	e, err := bigIntFlag(cmd, "e")
	if err != nil {
		return err
	}

	p, q, err := source.Primes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to obtain primes: %w", err)
	}

	publicKey, privateKey, err := commandHandler.rsaProcessor.DeriveKeys(p, q, e)
	if err != nil {
		commandHandler.logger.Error("Key derivation failed: ", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "n=%s\n", publicKey.N())
	fmt.Fprintf(out, "e=%s\n", publicKey.E())
	fmt.Fprintf(out, "d=%s\n", privateKey.D())
	return nil
}

func primeSourceFromFlags(cmd *cobra.Command) (rsakeys.PrimeSource, error) {
	bits, err := cmd.Flags().GetInt("random-bits")
	if err != nil {
		return nil, fmt.Errorf("invalid random-bits flag: %w", err)
	}
	if bits > 0 {
		return cryptography.NewRandomPrimeSource(bits)
	}

	var p, q *big.Int
	if p, err = bigIntFlag(cmd, "p"); err != nil {
		return nil, err
	}
	if q, err = bigIntFlag(cmd, "q"); err != nil {
		return nil, err
	}
	return cryptography.NewStaticPrimeSource(p, q)
}

// InitKeyCommands registers key derivation commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler %w", err)
	}

	var deriveKeysCmd = &cobra.Command{
		Use:   "derive-keys",
		Short: "Derive an RSA key pair from two primes",
		RunE:  handler.DeriveKeysCmd,
	}
	deriveKeysCmd.Flags().StringP("p", "", config.DefaultPrimeP, "First prime")
	deriveKeysCmd.Flags().StringP("q", "", config.DefaultPrimeQ, "Second prime")
	deriveKeysCmd.Flags().StringP("e", "", config.DefaultPublicExponent, "Public exponent")
	deriveKeysCmd.Flags().IntP("random-bits", "", 0, "Draw two random primes of this size instead of using --p and --q")
	rootCmd.AddCommand(deriveKeysCmd)

	return nil
}
