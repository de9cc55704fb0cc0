// Package main is the entry point for the toy-rsa-cli application.
// It registers the key derivation, encrypt/decrypt and demo commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/toy-rsa/cmd/toy-rsa-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := newRootCommand()

	// Initialize all command groups BEFORE executing
	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toy-rsa-cli",
		Short: "Textbook RSA arithmetic CLI tool",
		Long: `toy-rsa-cli derives RSA key pairs from two primes and encrypts or decrypts
messages with them using plain modular exponentiation.

There is no padding and no side-channel resistance. Use it to study RSA, not to protect data.`,
		SilenceUsage: true,
	}
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
