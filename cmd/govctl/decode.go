package govctl

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
	"github.com/smartcontractkit/govrelay/types"
)

func newDecodeCmd() *cobra.Command {
	var (
		flags               payloadFlags
		bridge              string
		governanceProgramID string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a governance payload and print it as JSON",
		Long: `Decode a governance payload without validating it. Placeholder accounts are labelled
with their role when --governance-program is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := types.ParseBridge(bridge)
			if err != nil {
				return err
			}
			payload, err := flags.read()
			if err != nil {
				return err
			}

			msg, err := solanasdk.Decode(b, payload)
			if err != nil {
				return fmt.Errorf("unable to decode payload: %w", err)
			}

			var registry *solanasdk.PlaceholderRegistry
			if governanceProgramID != "" {
				programID, perr := solana.PublicKeyFromBase58(governanceProgramID)
				if perr != nil {
					return fmt.Errorf("invalid governance program: %w", perr)
				}
				registry = solanasdk.NewPlaceholderRegistry(programID)
			}

			return writeJSON(cmd, newMessageView(msg, registry))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&bridge, "bridge", "", "Bridge the payload was delivered by: layerzero or wormhole")
	cmd.Flags().StringVar(&governanceProgramID, "governance-program", "", "Governance program id used to label placeholders")
	_ = cmd.MarkFlagRequired("bridge")

	return cmd
}
