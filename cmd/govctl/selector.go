package govctl

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
)

func newSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selector <instruction>...",
		Short: "Print the Anchor selector of instruction handlers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				discriminator := solanasdk.Discriminator(name)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					hex.EncodeToString(discriminator[:]), solanasdk.ToSnakeCase(name)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
