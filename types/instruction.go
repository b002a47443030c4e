package types

import (
	"github.com/gagliardetto/solana-go"
)

// ResolvedInstruction is a governance instruction with every placeholder replaced by a concrete
// key. It is built for one message and consumed by the invocation step.
type ResolvedInstruction struct {
	ProgramID solana.PublicKey        `json:"programId"`
	Accounts  solana.AccountMetaSlice `json:"accounts"`
	Data      []byte                  `json:"data"`

	// Signers lists the program derived addresses the governance program signs for when it
	// invokes the target.
	Signers []solana.PublicKey `json:"signers"`
}

// Instruction returns the resolved instruction as a solana-go instruction.
func (r ResolvedInstruction) Instruction() solana.Instruction {
	return solana.NewInstruction(r.ProgramID, r.Accounts, r.Data)
}

// MinedTransaction is the outcome of an invocation. Hash is the transaction signature when the
// invoker submitted one, and Tx holds invoker specific details.
type MinedTransaction struct {
	Hash string `json:"hash"`
	Tx   any    `json:"tx"`
}
