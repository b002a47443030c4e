package govctl

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/govrelay"
	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
	"github.com/smartcontractkit/govrelay/types"
)

func newPrepareCmd() *cobra.Command {
	var (
		flags   payloadFlags
		envPath string
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Validate a governance payload and print the resolved instruction",
		Long: `Decode and validate a governance payload against the relay configuration, then resolve
every placeholder account. Nothing is sent to the network.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := govrelay.LoadConfigFromEnv(envPath)
			if err != nil {
				return err
			}
			payload, err := flags.read()
			if err != nil {
				return err
			}

			ix, err := govrelay.NewProcessor(cfg, nil).Prepare(payload)
			if err != nil {
				return err
			}

			return writeJSON(cmd, newInstructionView(ix))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&envPath, "env", ".env", "Dotenv file holding the relay configuration")

	return cmd
}

func newSimulateCmd() *cobra.Command {
	var (
		flags     payloadFlags
		envPath   string
		isVAA     bool
		guardians []string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a governance payload through the relay and simulate the instruction",
		Long: `Process a governance payload exactly as the relay would and submit the resolved
instruction to the simulateTransaction method of RPC_URL. PAYER must be configured; it pays
the simulated fees and never signs anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := govrelay.LoadConfigFromEnv(envPath)
			if err != nil {
				return err
			}
			if cfg.RPCURL == "" {
				return errors.New("RPC_URL must be configured to simulate")
			}
			payload, err := flags.read()
			if err != nil {
				return err
			}

			simulator, err := solanasdk.NewSimulator(rpc.New(cfg.RPCURL), cfg.Payer)
			if err != nil {
				return err
			}
			processor := govrelay.NewProcessor(cfg, simulator)

			var tx types.MinedTransaction
			if isVAA {
				addresses := make([]common.Address, 0, len(guardians))
				for _, guardian := range guardians {
					if !common.IsHexAddress(guardian) {
						return fmt.Errorf("invalid guardian address %q", guardian)
					}
					addresses = append(addresses, common.HexToAddress(guardian))
				}
				tx, err = processor.ProcessVAA(cmd.Context(), payload, addresses)
			} else {
				tx, err = processor.Process(cmd.Context(), payload)
			}
			if err != nil {
				return err
			}

			return writeJSON(cmd, tx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&envPath, "env", ".env", "Dotenv file holding the relay configuration")
	cmd.Flags().BoolVar(&isVAA, "vaa", false, "The payload is a signed Wormhole governance VAA")
	cmd.Flags().StringSliceVar(&guardians, "guardian", nil, "Guardian address to verify VAA signatures against, repeatable")

	return cmd
}
