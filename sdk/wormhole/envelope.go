// Package wormhole unwraps governance instructions delivered as Wormhole general purpose
// governance VAAs.
package wormhole

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
)

const (
	moduleLength  = 32
	headerLength  = moduleLength + 1 + 2
	addressLength = 32
)

// Seal wraps a Wormhole governance message payload in a general purpose governance payload
// addressed to chainID. The first 32 bytes of message are the governance program id.
func Seal(chainID vaa.ChainID, message []byte) ([]byte, error) {
	if len(message) < addressLength {
		return nil, sdkerrors.NewMalformedPayloadError("governance program id", 0, addressLength, len(message))
	}

	var governanceContract vaa.Address
	copy(governanceContract[:], message[:addressLength])

	body := vaa.BodyGeneralPurposeGovernanceSolana{
		ChainID:            chainID,
		GovernanceContract: governanceContract,
		Instruction:        message[addressLength:],
	}
	payload, err := body.Serialize()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize governance payload: %w", err)
	}

	return payload, nil
}

// Open returns the governance message carried by a general purpose governance payload. The
// payload must use the Solana action and be addressed to chainID.
func Open(chainID vaa.ChainID, payload []byte) ([]byte, error) {
	if len(payload) < headerLength+addressLength {
		return nil, sdkerrors.NewMalformedPayloadError("governance header", 0, headerLength+addressLength, len(payload))
	}

	if !bytes.Equal(payload[:moduleLength], vaa.GeneralPurposeGovernanceModule[:]) {
		return nil, sdkerrors.NewUnauthorizedOriginError("governance module",
			fmt.Sprintf("%x", payload[:moduleLength]), fmt.Sprintf("%x", vaa.GeneralPurposeGovernanceModule[:]))
	}
	if action := vaa.GovernanceAction(payload[moduleLength]); action != vaa.GeneralPurposeGovernanceSolanaAction {
		return nil, sdkerrors.NewUnauthorizedOriginError("governance action",
			fmt.Sprint(action), fmt.Sprint(vaa.GeneralPurposeGovernanceSolanaAction))
	}
	if target := vaa.ChainID(binary.BigEndian.Uint16(payload[moduleLength+1 : headerLength])); target != chainID {
		return nil, sdkerrors.NewUnauthorizedOriginError("target chain", target.String(), chainID.String())
	}

	message := make([]byte, len(payload)-headerLength)
	copy(message, payload[headerLength:])

	return message, nil
}

// OpenVAA parses a governance VAA and returns the governance message it carries. The VAA must
// come from the Wormhole governance emitter. Guardian signatures are checked when guardians is
// not empty; otherwise the caller is trusted to have verified the VAA already.
func OpenVAA(chainID vaa.ChainID, data []byte, guardians []common.Address) ([]byte, error) {
	v, err := vaa.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse vaa: %w", sdkerrors.ErrMalformedPayload, err)
	}

	if v.EmitterChain != vaa.GovernanceChain || v.EmitterAddress != vaa.GovernanceEmitter {
		return nil, sdkerrors.NewUnauthorizedOriginError("vaa emitter",
			fmt.Sprintf("%s/%s", v.EmitterChain, v.EmitterAddress),
			fmt.Sprintf("%s/%s", vaa.GovernanceChain, vaa.GovernanceEmitter))
	}
	if len(guardians) > 0 {
		if err := v.Verify(guardians); err != nil {
			return nil, sdkerrors.NewUnauthorizedOriginError("vaa signatures", err.Error(), "guardian quorum")
		}
	}

	return Open(chainID, v.Payload)
}
