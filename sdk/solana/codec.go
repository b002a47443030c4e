package solana

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/govrelay/internal/utils/safecast"
	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
	"github.com/smartcontractkit/govrelay/types"
)

const (
	addressLength      = 32
	lengthPrefixLength = 4
	accountRefLength   = addressLength + 1
)

// Decode parses a governance payload delivered by bridge. Decoding is purely structural: it
// neither checks the origin nor interprets placeholder addresses. Empty account and data
// sections decode to nil slices.
//
// Both layouts are
//
//	origin[32] | program_id[32] | u32le n | n * (address[32] | flags u8) | u32le m | data[m]
//
// where origin is the EVM origin caller for LayerZero and the governance program id for
// Wormhole.
func Decode(bridge types.Bridge, payload []byte) (types.GovernanceMessage, error) {
	switch bridge {
	case types.BridgeLayerZero:
		return DecodeLayerZeroMessage(payload)
	case types.BridgeWormhole:
		return DecodeWormholeMessage(payload)
	}

	return nil, fmt.Errorf("unsupported bridge %q", bridge)
}

// DecodeLayerZeroMessage parses a payload in the LayerZero layout.
func DecodeLayerZeroMessage(payload []byte) (*types.LayerZeroMessage, error) {
	r := newPayloadReader(payload)

	originCaller, err := r.readAddress("origin caller")
	if err != nil {
		return nil, err
	}
	body, err := r.readBody()
	if err != nil {
		return nil, err
	}

	return &types.LayerZeroMessage{
		OriginCaller: [32]byte(originCaller),
		ProgramID:    body.programID,
		Accounts:     body.accounts,
		Data:         body.data,
	}, nil
}

// DecodeWormholeMessage parses a payload in the Wormhole layout.
func DecodeWormholeMessage(payload []byte) (*types.WormholeMessage, error) {
	r := newPayloadReader(payload)

	governanceProgramID, err := r.readAddress("governance program id")
	if err != nil {
		return nil, err
	}
	body, err := r.readBody()
	if err != nil {
		return nil, err
	}

	return &types.WormholeMessage{
		GovernanceProgramID: governanceProgramID,
		ProgramID:           body.programID,
		Accounts:            body.accounts,
		Data:                body.data,
	}, nil
}

// Encode serializes msg in the layout of its bridge. Encoding a decoded message reproduces the
// original payload byte for byte.
func Encode(msg types.GovernanceMessage) ([]byte, error) {
	var origin solana.PublicKey
	switch m := msg.(type) {
	case *types.LayerZeroMessage:
		origin = solana.PublicKey(m.OriginCaller)
	case *types.WormholeMessage:
		origin = m.GovernanceProgramID
	default:
		return nil, fmt.Errorf("unsupported governance message type %T", msg)
	}

	accounts := msg.AccountRefs()
	numAccounts, err := safecast.IntToUint32(len(accounts))
	if err != nil {
		return nil, fmt.Errorf("too many accounts: %w", err)
	}
	dataLen, err := safecast.IntToUint32(len(msg.InstructionData()))
	if err != nil {
		return nil, fmt.Errorf("instruction data too long: %w", err)
	}

	buf := bytes.NewBuffer(make([]byte, 0, EncodedLength(msg)))
	enc := bin.NewBinEncoder(buf)

	writes := []func() error{
		func() error { return enc.WriteBytes(origin[:], false) },
		func() error { return enc.WriteBytes(msg.Target().Bytes(), false) },
		func() error { return enc.WriteUint32(numAccounts, bin.LE) },
	}
	for _, account := range accounts {
		account := account
		writes = append(writes,
			func() error { return enc.WriteBytes(account.Address.Bytes(), false) },
			func() error { return enc.WriteUint8(uint8(account.Flags())) },
		)
	}
	writes = append(writes,
		func() error { return enc.WriteUint32(dataLen, bin.LE) },
		func() error { return enc.WriteBytes(msg.InstructionData(), false) },
	)

	for _, write := range writes {
		if err := write(); err != nil {
			return nil, fmt.Errorf("unable to encode governance message: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// EncodedLength returns the size of the encoded form of msg.
func EncodedLength(msg types.GovernanceMessage) int {
	return 2*addressLength +
		lengthPrefixLength + len(msg.AccountRefs())*accountRefLength +
		lengthPrefixLength + len(msg.InstructionData())
}

type messageBody struct {
	programID solana.PublicKey
	accounts  []types.AccountRef
	data      []byte
}

// payloadReader checks every read against the remaining buffer before touching it, so a short
// payload surfaces as a MalformedPayloadError rather than a decoder error.
type payloadReader struct {
	dec  *bin.Decoder
	size int
}

func newPayloadReader(payload []byte) *payloadReader {
	return &payloadReader{dec: bin.NewBinDecoder(payload), size: len(payload)}
}

func (r *payloadReader) offset() int {
	return r.size - r.dec.Remaining()
}

func (r *payloadReader) need(field string, n uint64) error {
	if remaining := r.dec.Remaining(); uint64(remaining) < n {
		return sdkerrors.NewMalformedPayloadError(field, r.offset(), n, remaining)
	}

	return nil
}

func (r *payloadReader) readAddress(field string) (solana.PublicKey, error) {
	var key solana.PublicKey
	if err := r.need(field, addressLength); err != nil {
		return key, err
	}
	if _, err := r.dec.Read(key[:]); err != nil {
		return key, fmt.Errorf("unable to read %s: %w", field, err)
	}

	return key, nil
}

func (r *payloadReader) readLength(field string) (uint32, error) {
	if err := r.need(field+" length", lengthPrefixLength); err != nil {
		return 0, err
	}
	n, err := r.dec.ReadUint32(bin.LE)
	if err != nil {
		return 0, fmt.Errorf("unable to read %s length: %w", field, err)
	}

	return n, nil
}

func (r *payloadReader) readBody() (messageBody, error) {
	var body messageBody

	programID, err := r.readAddress("program id")
	if err != nil {
		return body, err
	}
	body.programID = programID

	numAccounts, err := r.readLength("accounts")
	if err != nil {
		return body, err
	}
	// checked before allocating so a forged count cannot exhaust memory
	if err = r.need("accounts", uint64(numAccounts)*accountRefLength); err != nil {
		return body, err
	}
	if numAccounts > 0 {
		body.accounts = make([]types.AccountRef, 0, numAccounts)
	}
	for i := 0; i < int(numAccounts); i++ {
		address, aerr := r.readAddress(fmt.Sprintf("account %d address", i))
		if aerr != nil {
			return body, aerr
		}
		flags, ferr := r.dec.ReadUint8()
		if ferr != nil {
			return body, fmt.Errorf("unable to read account %d flags: %w", i, ferr)
		}
		if unknown := types.AccountFlags(flags).Unknown(); unknown != 0 {
			return body, sdkerrors.NewInvalidAccountFlagsError(i, flags)
		}
		body.accounts = append(body.accounts, types.AccountRefFromFlags(address, types.AccountFlags(flags)))
	}

	dataLen, err := r.readLength("data")
	if err != nil {
		return body, err
	}
	if err = r.need("data", uint64(dataLen)); err != nil {
		return body, err
	}
	if dataLen > 0 {
		body.data = make([]byte, dataLen)
		if _, err = r.dec.Read(body.data); err != nil {
			return body, fmt.Errorf("unable to read data: %w", err)
		}
	}

	if remaining := r.dec.Remaining(); remaining != 0 {
		return body, sdkerrors.NewTrailingBytesError(remaining)
	}

	return body, nil
}
