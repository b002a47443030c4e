package solana

import (
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
)

func TestDiscriminator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "set_oft_config", want: "377e57d99f4218c2"},
		{name: "setOftConfig", want: "377e57d99f4218c2"},
		{name: "set_paused", want: "5b3c7dc0b0e1a6da"},
		{name: "SetPaused", want: "5b3c7dc0b0e1a6da"},
		{name: "transfer_mint_authority", want: "57edbb54a8aff14b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Discriminator(tt.name)
			assert.Equal(t, tt.want, hex.EncodeToString(got[:]))
		})
	}
}

func TestInstructionData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler string
		args    []any
		want    string
	}{
		{
			name:    "no arguments",
			handler: "transfer_mint_authority",
			want:    "57edbb54a8aff14b",
		},
		{
			name:    "bool argument",
			handler: "set_paused",
			args:    []any{true},
			want:    "5b3c7dc0b0e1a6da01",
		},
		{
			name:    "enum variant with payload",
			handler: "set_oft_config",
			args:    []any{uint8(3), false},
			want:    "377e57d99f4218c20300",
		},
		{
			name:    "u64 argument is little endian",
			handler: "set_paused",
			args:    []any{uint64(0x0102)},
			want:    "5b3c7dc0b0e1a6da0201000000000000",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := InstructionData(tt.handler, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "set_oft_config", want: "set_oft_config"},
		{in: "setOftConfig", want: "set_oft_config"},
		{in: "SetPaused", want: "set_paused"},
		{in: "transferMintAuthority", want: "transfer_mint_authority"},
		{in: "initOApp", want: "init_o_app"},
		{in: "HTTPServer", want: "http_server"},
		{in: "upgrade2Program", want: "upgrade2_program"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ToSnakeCase(tt.in))
		})
	}
}

func TestSelectorAllowList_Check(t *testing.T) {
	t.Parallel()

	setPaused, err := InstructionData("set_paused", true)
	require.NoError(t, err)
	transfer, err := InstructionData("transfer_mint_authority")
	require.NoError(t, err)

	allowList := SelectorAllowList{
		testNTTProgramID: {"set_paused", "setPeer"},
	}

	tests := []struct {
		name    string
		data    []byte
		target  solana.PublicKey
		wantErr string
	}{
		{
			name:   "allowed selector",
			data:   setPaused,
			target: testNTTProgramID,
		},
		{
			name:   "unlisted program",
			data:   []byte{3},
			target: filledKey(0x0f),
		},
		{
			name:    "selector not allowed",
			data:    transfer,
			target:  testNTTProgramID,
			wantErr: "invalid target " + testNTTProgramID.String() + ": selector 57edbb54a8aff14b is not one of [set_paused setPeer]",
		},
		{
			name:    "data shorter than a selector",
			data:    []byte{3},
			target:  testNTTProgramID,
			wantErr: "invalid target " + testNTTProgramID.String() + ": instruction data is shorter than a selector",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := allowList.Check(tt.target, tt.data)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, sdkerrors.ErrInvalidTarget)
				require.EqualError(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}
}
