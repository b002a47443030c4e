package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/smartcontractkit/govrelay/sdk"
	"github.com/smartcontractkit/govrelay/types"
)

// Simulator is an Invoker that runs resolved instructions through the simulateTransaction RPC
// method. Signatures are not verified, so the governance PDAs listed as signers need no keys.
type Simulator struct {
	client *rpc.Client
	payer  solana.PublicKey
}

var _ Invoker = (*Simulator)(nil)

// NewSimulator creates a new Solana Simulator. payer is the fee payer of simulated transactions.
func NewSimulator(client *rpc.Client, payer solana.PublicKey) (*Simulator, error) {
	if client == nil {
		return nil, errors.New("Simulator was created without a Solana RPC client")
	}
	if payer.IsZero() {
		return nil, errors.New("Simulator was created without a fee payer")
	}

	return &Simulator{client: client, payer: payer}, nil
}

// SimulationResult is the MinedTransaction.Tx of a simulated invocation.
type SimulationResult struct {
	Logs          []string `json:"logs"`
	UnitsConsumed uint64   `json:"unitsConsumed"`
}

// Invoke simulates ix and fails when the runtime reports an error.
func (s *Simulator) Invoke(ctx context.Context, ix types.ResolvedInstruction) (types.MinedTransaction, error) {
	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix.Instruction()},
		solana.Hash{},
		solana.TransactionPayer(s.payer),
	)
	if err != nil {
		return types.MinedTransaction{}, fmt.Errorf("unable to create transaction: %w", err)
	}
	// the node replaces the blockhash and skips signature verification; it still expects one
	// signature slot per required signer
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	res, err := s.client.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		Commitment:             rpc.CommitmentConfirmed,
		ReplaceRecentBlockhash: true,
	})
	if err != nil {
		return types.MinedTransaction{}, fmt.Errorf("unable to simulate transaction: %w", err)
	}
	if res == nil || res.Value == nil {
		return types.MinedTransaction{}, errors.New("unable to simulate transaction: empty response")
	}

	result := SimulationResult{Logs: res.Value.Logs}
	if res.Value.UnitsConsumed != nil {
		result.UnitsConsumed = *res.Value.UnitsConsumed
	}
	if res.Value.Err != nil {
		sdk.LoggerFrom(ctx).Warnf("simulation of %s failed: %v, logs: %v", ix.ProgramID, res.Value.Err, res.Value.Logs)

		return types.MinedTransaction{Tx: result}, fmt.Errorf("simulation failed: %v", res.Value.Err)
	}
	sdk.LoggerFrom(ctx).Infof("simulated %s, units consumed: %d", ix.ProgramID, result.UnitsConsumed)
	sdk.LoggerFrom(ctx).Debugf("simulation logs of %s: %v", ix.ProgramID, result.Logs)

	return types.MinedTransaction{Tx: result}, nil
}
