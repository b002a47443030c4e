package types

import (
	"github.com/gagliardetto/solana-go"
)

// GovernanceMessage is a decoded governance instruction, independent of the bridge that
// delivered it.
type GovernanceMessage interface {
	// Bridge returns the bridge whose wire format the message uses.
	Bridge() Bridge

	// Target returns the program the instruction invokes.
	Target() solana.PublicKey

	// AccountRefs returns the instruction accounts in wire order.
	AccountRefs() []AccountRef

	// InstructionData returns the opaque instruction data.
	InstructionData() []byte
}

var (
	_ GovernanceMessage = (*LayerZeroMessage)(nil)
	_ GovernanceMessage = (*WormholeMessage)(nil)
)

// LayerZeroMessage is the governance message delivered by the LayerZero bridge. OriginCaller is
// the 20 byte EVM address of the remote sender, left padded with zeroes to 32 bytes.
type LayerZeroMessage struct {
	OriginCaller [32]byte         `json:"originCaller"`
	ProgramID    solana.PublicKey `json:"programId"`
	Accounts     []AccountRef     `json:"accounts"`
	Data         []byte           `json:"data"`
}

func (m *LayerZeroMessage) Bridge() Bridge { return BridgeLayerZero }
func (m *LayerZeroMessage) Target() solana.PublicKey { return m.ProgramID }
func (m *LayerZeroMessage) AccountRefs() []AccountRef { return m.Accounts }
func (m *LayerZeroMessage) InstructionData() []byte { return m.Data }

// WormholeMessage is the governance message delivered by the Wormhole bridge.
// GovernanceProgramID names the governance program the message was emitted for and anchors its
// authenticity; it is never an invocation target.
type WormholeMessage struct {
	GovernanceProgramID solana.PublicKey `json:"governanceProgramId"`
	ProgramID           solana.PublicKey `json:"programId"`
	Accounts            []AccountRef     `json:"accounts"`
	Data                []byte           `json:"data"`
}

func (m *WormholeMessage) Bridge() Bridge { return BridgeWormhole }
func (m *WormholeMessage) Target() solana.PublicKey { return m.ProgramID }
func (m *WormholeMessage) AccountRefs() []AccountRef { return m.Accounts }
func (m *WormholeMessage) InstructionData() []byte { return m.Data }
