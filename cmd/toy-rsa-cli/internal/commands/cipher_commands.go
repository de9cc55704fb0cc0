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

// CipherCommandHandler encapsulates logic for encrypting and decrypting text via CLI.
type CipherCommandHandler struct {
	rsaProcessor rsakeys.RSAProcessor
	padding      rsakeys.PaddingScheme
	logger       logger.Logger
}

// NewCipherCommandHandler initializes a new CipherCommandHandler with logging and an RSA processor.
func NewCipherCommandHandler() (*CipherCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &CipherCommandHandler{
		rsaProcessor: rsaProcessor,
		padding:      cryptography.NoPadding{},
		logger:       loggerInstance,
	}, nil
}

// EncryptCmd encodes a message and prints the encrypted blocks
func (commandHandler *CipherCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	n, err := bigIntFlag(cmd, "n")
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

	publicKey := rsakeys.NewPublicKey(n, e)

	padded, err := commandHandler.padding.Pad([]byte(message), publicKey)
	if err != nil {
		return fmt.Errorf("failed to pad message: %w", err)
	}

	blocks, err := codec.Encode(padded, publicKey)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	ciphertext, err := commandHandler.rsaProcessor.EncryptBlocks(cmd.Context(), blocks, publicKey)
	if err != nil {
		commandHandler.logger.Error("Encryption failed: ", err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatBlocks(ciphertext))
	return nil
}

// DecryptCmd decrypts the given blocks and prints the decoded message
func (commandHandler *CipherCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	n, err := bigIntFlag(cmd, "n")
	if err != nil {
		return err
	}
	d, err := bigIntFlag(cmd, "d")
	if err != nil {
		return err
	}
	ciphertext, err := blocksFlag(cmd, "blocks")
	if err != nil {
		return err
	}
	codec, err := codecFromFlags(cmd)
	if err != nil {
		return err
	}

	privateKey := rsakeys.NewPrivateKey(n, d)
	// codecs and padding only consult the modulus
	codecKey := rsakeys.NewPublicKey(n, big.NewInt(1))

	plaintext, err := commandHandler.rsaProcessor.DecryptBlocks(cmd.Context(), ciphertext, privateKey)
	if err != nil {
		commandHandler.logger.Error("Decryption failed: ", err)
		return err
	}

	message, err := codec.Decode(plaintext, codecKey)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	unpadded, err := commandHandler.padding.Unpad(message, codecKey)
	if err != nil {
		return fmt.Errorf("failed to unpad message: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(unpadded))
	return nil
}

func codecFromFlags(cmd *cobra.Command) (rsakeys.BlockCodec, error) {
	name, err := cmd.Flags().GetString("codec")
	if err != nil {
		return nil, fmt.Errorf("invalid codec flag: %w", err)
	}
	return cryptography.NewBlockCodec(name)
}

// InitCipherCommands registers encrypt and decrypt commands
func InitCipherCommands(rootCmd *cobra.Command) error {
	handler, err := NewCipherCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create cipher command handler %w", err)
	}

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a message with a public key",
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("n", "", "", "Modulus")
	encryptCmd.Flags().StringP("e", "", config.DefaultPublicExponent, "Public exponent")
	encryptCmd.Flags().StringP("message", "", "", "Message to encrypt")
	encryptCmd.Flags().StringP("codec", "", config.CodecByte, "Message codec (byte or octet)")
	if err := encryptCmd.MarkFlagRequired("n"); err != nil {
		return fmt.Errorf("failed to mark n flag required: %w", err)
	}
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt ciphertext blocks with a private key",
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("n", "", "", "Modulus")
	decryptCmd.Flags().StringP("d", "", "", "Private exponent")
	decryptCmd.Flags().StringSliceP("blocks", "", nil, "Comma separated ciphertext blocks")
	decryptCmd.Flags().StringP("codec", "", config.CodecByte, "Message codec (byte or octet)")
	for _, name := range []string{"n", "d", "blocks"} {
		if err := decryptCmd.MarkFlagRequired(name); err != nil {
			return fmt.Errorf("failed to mark %s flag required: %w", name, err)
		}
	}
	rootCmd.AddCommand(decryptCmd)

	return nil
}
