package commands

import (
	"fmt"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/config"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DefaultDemoMessage is the message of the demonstration run
const DefaultDemoMessage = "Ola!"

// DemoCommandHandler runs the derive, encode, encrypt, decrypt, decode sequence end to end.
type DemoCommandHandler struct {
	rsaProcessor rsakeys.RSAProcessor
	logger       logger.Logger
}

// NewDemoCommandHandler initializes a new DemoCommandHandler with logging and an RSA processor.
func NewDemoCommandHandler() (*DemoCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &DemoCommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// DemoCmd prints every intermediate value and fails when the round trip does not reproduce the message
func (commandHandler *DemoCommandHandler) DemoCmd(cmd *cobra.Command, _ []string) error {
	source, err := primeSourceFromFlags(cmd)
	if err != nil {
		return err
	}
	e, err := bigIntFlag(cmd, "e")
	if err != nil {
		return err
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("invalid message flag: %w", err)
	}
	codec, err := codecFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	p, q, err := source.Primes(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain primes: %w", err)
	}

	publicKey, privateKey, err := commandHandler.rsaProcessor.DeriveKeys(p, q, e)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "public key:  (n=%s, e=%s)\n", publicKey.N(), publicKey.E())
	fmt.Fprintf(out, "private key: (n=%s, d=%s)\n", privateKey.N(), privateKey.D())

	blocks, err := codec.Encode([]byte(message), publicKey)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	fmt.Fprintf(out, "encoded:     %s\n", formatBlocks(blocks))

	ciphertext, err := commandHandler.rsaProcessor.EncryptBlocks(ctx, blocks, publicKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "encrypted:   %s\n", formatBlocks(ciphertext))

	plaintext, err := commandHandler.rsaProcessor.DecryptBlocks(ctx, ciphertext, privateKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "decrypted:   %s\n", formatBlocks(plaintext))

	decoded, err := codec.Decode(plaintext, publicKey)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	fmt.Fprintf(out, "decoded:     %s\n", decoded)

	if string(decoded) != message {
		return fmt.Errorf("round trip mismatch: got %q, want %q", decoded, message)
	}

	commandHandler.logger.Info("Round trip succeeded for ", len(blocks), " ", codec.Name(), " blocks")
	return nil
}

// InitDemoCommands registers the demonstration command
func InitDemoCommands(rootCmd *cobra.Command) error {
	handler, err := NewDemoCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create demo command handler %w", err)
	}

	var demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run the key derivation and encryption round trip on a sample message",
		RunE:  handler.DemoCmd,
	}
	demoCmd.Flags().StringP("p", "", config.DefaultPrimeP, "First prime")
	demoCmd.Flags().StringP("q", "", config.DefaultPrimeQ, "Second prime")
	demoCmd.Flags().StringP("e", "", config.DefaultPublicExponent, "Public exponent")
	demoCmd.Flags().IntP("random-bits", "", 0, "Draw two random primes of this size instead of using --p and --q")
	demoCmd.Flags().StringP("message", "", DefaultDemoMessage, "Message to encrypt")
	demoCmd.Flags().StringP("codec", "", config.CodecByte, "Message codec (byte or octet)")
	rootCmd.AddCommand(demoCmd)

	return nil
}
