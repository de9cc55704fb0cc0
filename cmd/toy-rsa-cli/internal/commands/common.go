package commands

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/MGTheTrain/toy-rsa/internal/pkg/config"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// bigIntFlag reads a decimal integer flag
func bigIntFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s flag: %q is not a decimal integer", name, raw)
	}
	return v, nil
}

// blocksFlag reads a comma separated list of decimal integers
func blocksFlag(cmd *cobra.Command, name string) ([]*big.Int, error) {
	raw, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	blocks := make([]*big.Int, len(raw))
	for i, value := range raw {
		v, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
		if !ok {
			return nil, fmt.Errorf("invalid %s flag: block %d %q is not a decimal integer", name, i, value)
		}
		blocks[i] = v
	}
	return blocks, nil
}

func formatBlocks(blocks []*big.Int) string {
	values := make([]string, len(blocks))
	for i, block := range blocks {
		values[i] = block.String()
	}
	return strings.Join(values, ",")
}
