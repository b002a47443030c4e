package govctl

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartcontractkit/govrelay/sdk"
)

// BuildGovctlCmd returns the root command of the governance relay tool.
func BuildGovctlCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "govctl",
		Short:         "Inspect and relay cross-chain governance messages for Solana programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg = zap.NewDevelopmentConfig()
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("unable to build logger: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(sdk.ContextWithLogger(ctx, logger.Sugar()))

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level in a human readable format")

	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newPrepareCmd())
	cmd.AddCommand(newSimulateCmd())
	cmd.AddCommand(newSelectorCmd())
	cmd.AddCommand(newSealCmd())

	return cmd
}

// payloadFlags are the flags every command reading a governance payload accepts.
type payloadFlags struct {
	payload     string
	payloadFile string
}

func (f *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.payload, "payload", "", "Hex encoded payload, with or without 0x prefix")
	cmd.Flags().StringVar(&f.payloadFile, "payload-file", "", "File holding the hex encoded payload")
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-file")
	cmd.MarkFlagsOneRequired("payload", "payload-file")
}

func (f *payloadFlags) read() ([]byte, error) {
	text := f.payload
	if f.payloadFile != "" {
		contents, err := os.ReadFile(f.payloadFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read payload file: %w", err)
		}
		text = string(contents)
	}

	text = strings.TrimPrefix(strings.TrimSpace(text), "0x")
	if text == "" {
		return nil, errors.New("payload is empty")
	}
	payload, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("payload is not valid hex: %w", err)
	}

	return payload, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
