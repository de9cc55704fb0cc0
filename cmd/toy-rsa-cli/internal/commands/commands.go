package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitCommands registers all command groups with the root command.
func InitCommands(rootCmd *cobra.Command) error {
	if err := InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	if err := InitCipherCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize cipher commands: %w", err)
	}

	if err := InitDemoCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize demo commands: %w", err)
	}

	return nil
}
