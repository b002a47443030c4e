package govctl

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/smartcontractkit/govrelay/internal/utils/safecast"
	"github.com/smartcontractkit/govrelay/sdk/wormhole"
)

func newSealCmd() *cobra.Command {
	var (
		flags   payloadFlags
		chainID uint64
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Wrap a Wormhole governance payload in a general purpose governance payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := flags.read()
			if err != nil {
				return err
			}
			id, err := safecast.Uint64ToUint16(chainID)
			if err != nil {
				return fmt.Errorf("invalid chain id: %w", err)
			}

			sealed, err := wormhole.Seal(vaa.ChainID(id), payload)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sealed))

			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().Uint64Var(&chainID, "chain", uint64(vaa.ChainIDSolana), "Wormhole chain id the payload is addressed to")

	return cmd
}
