package solana

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
	"github.com/smartcontractkit/govrelay/types"
)

func TestDecodeLayerZeroMessage_Unpause(t *testing.T) {
	t.Parallel()

	got, err := DecodeLayerZeroMessage(mustDecodeHex(t, unpausePayload))
	require.NoError(t, err)
	require.Equal(t, unpauseMessage(t), got)

	assert.Equal(t, types.BridgeLayerZero, got.Bridge())
	assert.Equal(t, filledKey(0x0f), got.Target())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	wormholePayload, err := Encode(upgradeMessage())
	require.NoError(t, err)

	tests := []struct {
		name    string
		bridge  types.Bridge
		payload []byte
		want    types.GovernanceMessage
		wantErr string
	}{
		{
			name:    "layerzero",
			bridge:  types.BridgeLayerZero,
			payload: mustDecodeHex(t, unpausePayload),
			want:    unpauseMessage(t),
		},
		{
			name:    "wormhole",
			bridge:  types.BridgeWormhole,
			payload: wormholePayload,
			want:    upgradeMessage(),
		},
		{
			name:    "unknown bridge",
			bridge:  types.Bridge("ccip"),
			payload: wormholePayload,
			wantErr: `unsupported bridge "ccip"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.bridge, tt.payload)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  types.GovernanceMessage
	}{
		{name: "layerzero unpause", msg: unpauseMessage(t)},
		{name: "wormhole upgrade", msg: upgradeMessage()},
		{
			name: "no accounts and no data",
			msg: &types.WormholeMessage{
				GovernanceProgramID: testWormholeGovernanceProgramID,
				ProgramID:           testNTTProgramID,
			},
		},
		{
			name: "accounts without data",
			msg: &types.LayerZeroMessage{
				OriginCaller: [32]byte(filledKey(0xbf)),
				ProgramID:    testNTTProgramID,
				Accounts:     []types.AccountRef{types.NewAccountRef(OwnerPlaceholder, true, false)},
			},
		},
		{
			name: "data without accounts",
			msg: &types.LayerZeroMessage{
				OriginCaller: [32]byte(filledKey(0xbf)),
				ProgramID:    testNTTProgramID,
				Data:         []byte{0x01},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := Encode(tt.msg)
			require.NoError(t, err)
			require.Len(t, payload, EncodedLength(tt.msg))

			got, err := Decode(tt.msg.Bridge(), payload)
			require.NoError(t, err)
			require.Equal(t, tt.msg, got)

			again, err := Encode(got)
			require.NoError(t, err)
			require.Equal(t, payload, again)
		})
	}
}

func TestDecodeWormholeMessage_NTTFixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		msg          *types.WormholeMessage
		wantLen      int
		wantData     string
		wantOwner    types.AccountFlags
		wantWritable []solana.PublicKey
	}{
		{
			name:         "set_paused",
			msg:          setPausedMessage(t),
			wantLen:      147,
			wantData:     "5b3c7dc0b0e1a6da01",
			wantOwner:    types.AccountFlagSigner,
			wantWritable: []solana.PublicKey{testNTTConfigID},
		},
		{
			name:         "transfer_mint_authority",
			msg:          transferMintAuthorityMessage(t),
			wantLen:      310,
			wantData:     "57edbb54a8aff14b" + strings.Repeat("17", 32),
			wantOwner:    types.AccountFlagSigner | types.AccountFlagWritable,
			wantWritable: []solana.PublicKey{OwnerPlaceholder, testUSDSMintID, testCustodyATAID},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := Encode(tt.msg)
			require.NoError(t, err)
			require.Len(t, payload, tt.wantLen)

			got, err := DecodeWormholeMessage(payload)
			require.NoError(t, err)
			require.Equal(t, tt.msg, got)

			assert.Equal(t, tt.wantData, hex.EncodeToString(got.Data))
			assert.Equal(t, OwnerPlaceholder, got.Accounts[0].Address)
			assert.Equal(t, tt.wantOwner, got.Accounts[0].Flags())

			var writable []solana.PublicKey
			for _, account := range got.Accounts {
				if account.IsWritable {
					writable = append(writable, account.Address)
				}
			}
			assert.Equal(t, tt.wantWritable, writable)
		})
	}
}

func TestDecode_EmptySectionsAreNil(t *testing.T) {
	t.Parallel()

	empty := &types.WormholeMessage{
		GovernanceProgramID: testWormholeGovernanceProgramID,
		ProgramID:           testNTTProgramID,
		Accounts:            []types.AccountRef{},
		Data:                []byte{},
	}
	payload, err := Encode(empty)
	require.NoError(t, err)

	unset, err := Encode(&types.WormholeMessage{
		GovernanceProgramID: testWormholeGovernanceProgramID,
		ProgramID:           testNTTProgramID,
	})
	require.NoError(t, err)
	require.Equal(t, payload, unset)

	got, err := DecodeWormholeMessage(payload)
	require.NoError(t, err)
	assert.Nil(t, got.Accounts)
	assert.Nil(t, got.Data)
}

func TestEncode_LayerZeroBytes(t *testing.T) {
	t.Parallel()

	payload, err := Encode(unpauseMessage(t))
	require.NoError(t, err)
	assert.Equal(t, unpausePayload, hex.EncodeToString(payload))
}

func TestDecode_PreservesOrderAndFlags(t *testing.T) {
	t.Parallel()

	msg := upgradeMessage()
	payload, err := Encode(msg)
	require.NoError(t, err)

	got, err := DecodeWormholeMessage(payload)
	require.NoError(t, err)
	require.Len(t, got.Accounts, 7)
	for i, want := range msg.Accounts {
		assert.Equal(t, want, got.Accounts[i], "account %d", i)
	}
	// the owner sentinel appears twice with different flags and must not be merged
	assert.Equal(t, types.AccountFlagWritable, got.Accounts[3].Flags())
	assert.Equal(t, types.AccountFlagSigner, got.Accounts[6].Flags())
	assert.Equal(t, got.Accounts[3].Address, got.Accounts[6].Address)
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	payload := mustDecodeHex(t, unpausePayload)
	for n := 0; n < len(payload); n++ {
		_, err := DecodeLayerZeroMessage(payload[:n])
		require.ErrorIs(t, err, sdkerrors.ErrMalformedPayload, "prefix of %d bytes", n)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	valid := mustDecodeHex(t, unpausePayload)
	mutate := func(f func(b []byte) []byte) []byte {
		b := make([]byte, len(valid))
		copy(b, valid)

		return f(b)
	}
	const (
		accountCountOffset = 64
		firstFlagsOffset   = accountCountOffset + 4 + 32
		dataLenOffset      = accountCountOffset + 4 + 2*33
	)

	tests := []struct {
		name     string
		payload  []byte
		wantKind error
		wantErr  string
	}{
		{
			name:     "empty payload",
			payload:  nil,
			wantKind: sdkerrors.ErrMalformedPayload,
			wantErr:  "malformed payload: origin caller at offset 0 needs 32 bytes, 0 remaining",
		},
		{
			name:     "trailing byte",
			payload:  append(mutate(func(b []byte) []byte { return b }), 0x00),
			wantKind: sdkerrors.ErrTrailingBytes,
			wantErr:  "trailing bytes: 1 bytes left after message",
		},
		{
			name: "unknown flag bit",
			payload: mutate(func(b []byte) []byte {
				b[firstFlagsOffset] = 0x05
				return b
			}),
			wantKind: sdkerrors.ErrInvalidAccountFlags,
			wantErr:  "invalid account flags: account 0 has flags 00000101",
		},
		{
			name: "forged account count",
			payload: mutate(func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[accountCountOffset:], 0xffffffff)
				return b
			}),
			wantKind: sdkerrors.ErrMalformedPayload,
			wantErr:  "malformed payload: accounts at offset 68 needs 141733920735 bytes, 80 remaining",
		},
		{
			name: "data length past the end",
			payload: mutate(func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[dataLenOffset:], 11)
				return b
			}),
			wantKind: sdkerrors.ErrMalformedPayload,
			wantErr:  "malformed payload: data at offset 138 needs 11 bytes, 10 remaining",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeLayerZeroMessage(tt.payload)
			require.ErrorIs(t, err, tt.wantKind)
			require.EqualError(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, sdkerrors.KindOf(err))
		})
	}
}

func TestDecode_PlaceholdersAreNotInterpreted(t *testing.T) {
	t.Parallel()

	msg := &types.LayerZeroMessage{
		ProgramID: testNTTProgramID,
		Accounts: []types.AccountRef{
			types.NewAccountRef(MustSentinel("mystery"), true, true),
			types.NewAccountRef(solana.SystemProgramID, false, false),
		},
	}
	payload, err := Encode(msg)
	require.NoError(t, err)

	got, err := DecodeLayerZeroMessage(payload)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}
