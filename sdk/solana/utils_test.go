package solana

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/govrelay/types"
)

var anyContext = mock.MatchedBy(func(_ context.Context) bool { return true })

var (
	testLayerZeroGovernanceProgramID = solana.MustPublicKeyFromBase58("NGoD1yTeq5KaURrZo7MnCTFzTA4g62ygakJCnzMLCfm")
	testWormholeGovernanceProgramID  = solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
	testNTTProgramID                 = solana.MustPublicKeyFromBase58("STTUVCMPuNbk21y1J6nqEGXSQ8HKvFmFBKnCvKHTrWn")
	testNTTProgramDataID             = solana.MustPublicKeyFromBase58("CKKGtQ2m1t4gHUz2tECGQNqaaFtGsoc9eBjzm61qqV2Q")
	testNTTConfigID                  = solana.MustPublicKeyFromBase58("DCWd3ygRyr9qESyRfPRCMQ6o1wAsPu2niPUc48ixWeY9")
	testNTTTokenAuthorityID          = solana.MustPublicKeyFromBase58("Bjui9tuxKGsiF5FDwosfUsRUXg9RZCKidbThfm6CRtRt")
	testUSDSMintID                   = solana.MustPublicKeyFromBase58("USDSwr9ApdHk5bvJKMjzff41FfuX8bSxdKcR81vTwcA")
	testCustodyATAID                 = solana.MustPublicKeyFromBase58("4CVeJ5oZPL77ewm9DdjEEnh6vLSWKvcPhzgvhpKcZRuL")
)

// unpausePayload is a LayerZero governance payload calling set_oft_config(Paused(false)) on an
// OFT program from the EVM admin 0xBE8E3e3618f7474F8cB1d074A26afFef007E98FB.
const unpausePayload = "000000000000000000000000be8e3e3618f7474f8cb1d074a26affef007e98fb" +
	"0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f" +
	"02000000" +
	"6370695f617574686f7269747900000000000000000000000000000000000000" + "01" +
	"0505050505050505050505050505050505050505050505050505050505050505" + "02" +
	"0a000000" + "377e57d99f4218c2" + "0300"

func unpauseMessage(t *testing.T) *types.LayerZeroMessage {
	t.Helper()

	var origin [32]byte
	copy(origin[12:], mustDecodeHex(t, "BE8E3e3618f7474F8cB1d074A26afFef007E98FB"))

	data, err := InstructionData("set_oft_config", uint8(3), false)
	require.NoError(t, err)

	return &types.LayerZeroMessage{
		OriginCaller: origin,
		ProgramID:    filledKey(0x0f),
		Accounts: []types.AccountRef{
			types.NewAccountRef(CPIAuthorityPlaceholder, true, false),
			types.NewAccountRef(filledKey(0x05), false, true),
		},
		Data: data,
	}
}

// upgradeMessage is a Wormhole governance message upgrading the NTT program through the
// upgradeable loader, with the owner placeholder as both spill account and upgrade authority.
func upgradeMessage() *types.WormholeMessage {
	return &types.WormholeMessage{
		GovernanceProgramID: testWormholeGovernanceProgramID,
		ProgramID:           solana.BPFLoaderUpgradeableProgramID,
		Accounts: []types.AccountRef{
			types.NewAccountRef(testNTTProgramDataID, false, true),
			types.NewAccountRef(testNTTProgramID, false, true),
			types.NewAccountRef(filledKey(0xbf), false, true),
			types.NewAccountRef(OwnerPlaceholder, false, true),
			types.NewAccountRef(solana.SysVarRentPubkey, false, false),
			types.NewAccountRef(solana.SysVarClockPubkey, false, false),
			types.NewAccountRef(OwnerPlaceholder, true, false),
		},
		Data: []byte{3},
	}
}

// rawSentinel copies label into an otherwise zero key without checking it.
func rawSentinel(label string) solana.PublicKey {
	var key solana.PublicKey
	copy(key[:], label)

	return key
}

// setPausedMessage pauses the NTT manager. The owner placeholder pays and signs.
func setPausedMessage(t *testing.T) *types.WormholeMessage {
	t.Helper()

	data, err := InstructionData("set_paused", true)
	require.NoError(t, err)

	return &types.WormholeMessage{
		GovernanceProgramID: testWormholeGovernanceProgramID,
		ProgramID:           testNTTProgramID,
		Accounts: []types.AccountRef{
			types.NewAccountRef(OwnerPlaceholder, true, false),
			types.NewAccountRef(testNTTConfigID, false, true),
		},
		Data: data,
	}
}

// transferMintAuthorityMessage hands the USDS mint authority from the NTT manager to the new
// authority 0x17..17. The owner placeholder is a writable signer.
func transferMintAuthorityMessage(t *testing.T) *types.WormholeMessage {
	t.Helper()

	data, err := InstructionData("transfer_mint_authority", filledKey(0x17))
	require.NoError(t, err)

	return &types.WormholeMessage{
		GovernanceProgramID: testWormholeGovernanceProgramID,
		ProgramID:           testNTTProgramID,
		Accounts: []types.AccountRef{
			types.NewAccountRef(OwnerPlaceholder, true, true),
			types.NewAccountRef(testNTTConfigID, false, false),
			types.NewAccountRef(testNTTTokenAuthorityID, false, false),
			types.NewAccountRef(testUSDSMintID, false, true),
			types.NewAccountRef(solana.TokenProgramID, false, false),
			types.NewAccountRef(testCustodyATAID, false, true),
		},
		Data: data,
	}
}

func filledKey(b byte) solana.PublicKey {
	var key solana.PublicKey
	for i := range key {
		key[i] = b
	}

	return key
}

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func randomPublicKey(t *testing.T) solana.PublicKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey.PublicKey()
}

func ptrTo[T any](value T) *T { return &value }
