package govrelay

import (
	"encoding/hex"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
	"github.com/smartcontractkit/govrelay/types"
)

// Validator checks decoded governance messages against the relay configuration before any
// account is resolved.
type Validator struct {
	bridge              types.Bridge
	governanceProgramID solana.PublicKey
	adminOriginCaller   [32]byte
}

// NewValidator returns a Validator for cfg.
func NewValidator(cfg *Config) *Validator {
	return &Validator{
		bridge:              cfg.Bridge,
		governanceProgramID: cfg.GovernanceProgramID,
		adminOriginCaller:   cfg.AdminOriginCaller(),
	}
}

// Validate authorizes the origin of msg and checks its target. Origin checks come first so an
// unauthorized message is never reported for anything else.
func (v *Validator) Validate(msg types.GovernanceMessage) error {
	if err := v.validateOrigin(msg); err != nil {
		return err
	}

	return v.validateTarget(msg)
}

func (v *Validator) validateOrigin(msg types.GovernanceMessage) error {
	if msg.Bridge() != v.bridge {
		return sdkerrors.NewUnauthorizedOriginError("bridge", msg.Bridge().String(), v.bridge.String())
	}

	switch m := msg.(type) {
	case *types.LayerZeroMessage:
		if m.OriginCaller != v.adminOriginCaller {
			return sdkerrors.NewUnauthorizedOriginError("origin caller",
				"0x"+hex.EncodeToString(m.OriginCaller[:]), "0x"+hex.EncodeToString(v.adminOriginCaller[:]))
		}
	case *types.WormholeMessage:
		if !m.GovernanceProgramID.Equals(v.governanceProgramID) {
			return sdkerrors.NewUnauthorizedOriginError("governance program id",
				m.GovernanceProgramID.String(), v.governanceProgramID.String())
		}
	default:
		return sdkerrors.NewUnauthorizedOriginError("message type", msg.Bridge().String(), v.bridge.String())
	}

	return nil
}

func (v *Validator) validateTarget(msg types.GovernanceMessage) error {
	if msg.Target().Equals(v.governanceProgramID) {
		return sdkerrors.NewInvalidTargetError(msg.Target(), "governance program cannot invoke itself")
	}
	if len(msg.AccountRefs()) == 0 {
		return sdkerrors.NewInvalidTargetError(msg.Target(), "instruction has no accounts")
	}

	return nil
}
