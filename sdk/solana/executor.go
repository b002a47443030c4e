package solana

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
	"github.com/smartcontractkit/govrelay/types"
)

// Invoker performs the invocation of a resolved instruction on the host runtime.
type Invoker interface {
	Invoke(ctx context.Context, ix types.ResolvedInstruction) (types.MinedTransaction, error)
}

// Executor turns validated governance messages into resolved instructions and hands them to an
// Invoker. It keeps no state between messages.
type Executor struct {
	registry  *PlaceholderRegistry
	invoker   Invoker
	allowList SelectorAllowList
}

// NewExecutor creates a new Executor. allowList may be nil.
func NewExecutor(registry *PlaceholderRegistry, invoker Invoker, allowList SelectorAllowList) *Executor {
	return &Executor{
		registry:  registry,
		invoker:   invoker,
		allowList: allowList,
	}
}

// Prepare resolves every account of msg, keeping order and flags, and checks the instruction
// selector against the allow list.
func (e *Executor) Prepare(msg types.GovernanceMessage) (types.ResolvedInstruction, error) {
	programID := msg.Target()
	if err := e.allowList.Check(programID, msg.InstructionData()); err != nil {
		return types.ResolvedInstruction{}, err
	}

	refs := msg.AccountRefs()
	accounts := make(solana.AccountMetaSlice, 0, len(refs))
	var signers []solana.PublicKey
	for i, ref := range refs {
		addr := e.registry.Classify(ref.Address)
		key, err := e.registry.Resolve(addr, programID)
		if err != nil {
			return types.ResolvedInstruction{}, fmt.Errorf("account %d: %w", i, err)
		}
		accounts = append(accounts, solana.NewAccountMeta(key, ref.IsWritable, ref.IsSigner))

		if ref.IsSigner && e.registry.IsGovernanceSigner(addr) &&
			!slices.Contains(signers, key) {
			signers = append(signers, key)
		}
	}

	data := make([]byte, len(msg.InstructionData()))
	copy(data, msg.InstructionData())

	return types.ResolvedInstruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
		Signers:   signers,
	}, nil
}

// Execute prepares msg and invokes it. Errors from the invoker are reported as invocation
// failures and never retried.
func (e *Executor) Execute(ctx context.Context, msg types.GovernanceMessage) (types.MinedTransaction, error) {
	ix, err := e.Prepare(msg)
	if err != nil {
		return types.MinedTransaction{}, err
	}

	tx, err := e.invoker.Invoke(ctx, ix)
	if err != nil {
		if errors.Is(err, sdkerrors.ErrInvocationFailure) {
			return types.MinedTransaction{}, err
		}

		return types.MinedTransaction{}, sdkerrors.NewInvocationFailureError(ix.ProgramID, err)
	}

	return tx, nil
}
