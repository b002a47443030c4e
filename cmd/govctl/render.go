package govctl

import (
	"encoding/hex"

	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
	"github.com/smartcontractkit/govrelay/types"
)

type accountView struct {
	Address    string `json:"address"`
	Role       string `json:"role,omitempty"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

type messageView struct {
	Bridge              types.Bridge  `json:"bridge"`
	OriginCaller        string        `json:"originCaller,omitempty"`
	GovernanceProgramID string        `json:"governanceProgramId,omitempty"`
	ProgramID           string        `json:"programId"`
	Accounts            []accountView `json:"accounts"`
	Data                string        `json:"data"`
}

type instructionView struct {
	ProgramID string        `json:"programId"`
	Accounts  []accountView `json:"accounts"`
	Data      string        `json:"data"`
	Signers   []string      `json:"signers"`
}

// newMessageView renders msg with placeholder sentinels labelled by role. registry may be nil,
// in which case only the sentinel namespace is recognized.
func newMessageView(msg types.GovernanceMessage, registry *solanasdk.PlaceholderRegistry) messageView {
	view := messageView{
		Bridge:    msg.Bridge(),
		ProgramID: msg.Target().String(),
		Accounts:  make([]accountView, 0, len(msg.AccountRefs())),
		Data:      hex.EncodeToString(msg.InstructionData()),
	}

	switch m := msg.(type) {
	case *types.LayerZeroMessage:
		view.OriginCaller = "0x" + hex.EncodeToString(m.OriginCaller[:])
	case *types.WormholeMessage:
		view.GovernanceProgramID = m.GovernanceProgramID.String()
	}

	for _, ref := range msg.AccountRefs() {
		account := accountView{
			Address:    ref.Address.String(),
			IsSigner:   ref.IsSigner,
			IsWritable: ref.IsWritable,
		}
		if registry != nil {
			if addr := registry.Classify(ref.Address); addr.IsPlaceholder() {
				account.Role = addr.Role().String()
			}
		} else if solanasdk.IsSentinel(ref.Address) {
			account.Role = "placeholder"
		}
		view.Accounts = append(view.Accounts, account)
	}

	return view
}

func newInstructionView(ix types.ResolvedInstruction) instructionView {
	view := instructionView{
		ProgramID: ix.ProgramID.String(),
		Accounts:  make([]accountView, 0, len(ix.Accounts)),
		Data:      hex.EncodeToString(ix.Data),
		Signers:   make([]string, 0, len(ix.Signers)),
	}
	for _, meta := range ix.Accounts {
		view.Accounts = append(view.Accounts, accountView{
			Address:    meta.PublicKey.String(),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}
	for _, signer := range ix.Signers {
		view.Signers = append(view.Signers, signer.String())
	}

	return view
}
