package types

import (
	"github.com/gagliardetto/solana-go"
)

// AccountFlags is the one byte flag field that follows every address on the wire.
type AccountFlags uint8

const (
	// AccountFlagSigner marks the account as a signer of the instruction.
	AccountFlagSigner AccountFlags = 1 << 0
	// AccountFlagWritable marks the account as writable by the instruction.
	AccountFlagWritable AccountFlags = 1 << 1

	// AccountFlagsMask holds every defined flag bit.
	AccountFlagsMask = AccountFlagSigner | AccountFlagWritable
)

// Unknown returns the bits that are set but not defined.
func (f AccountFlags) Unknown() AccountFlags {
	return f &^ AccountFlagsMask
}

// AccountRef is one account entry of a governance instruction. The address may be a literal
// key or a placeholder sentinel; it is only interpreted when the instruction is resolved.
type AccountRef struct {
	Address    solana.PublicKey `json:"address"`
	IsSigner   bool             `json:"isSigner"`
	IsWritable bool             `json:"isWritable"`
}

// NewAccountRef returns an AccountRef for the given address and flags.
func NewAccountRef(address solana.PublicKey, isSigner, isWritable bool) AccountRef {
	return AccountRef{Address: address, IsSigner: isSigner, IsWritable: isWritable}
}

// AccountRefFromFlags builds an AccountRef from a wire flag byte. Undefined bits are ignored
// here; the codec is responsible for rejecting them.
func AccountRefFromFlags(address solana.PublicKey, flags AccountFlags) AccountRef {
	return AccountRef{
		Address:    address,
		IsSigner:   flags&AccountFlagSigner != 0,
		IsWritable: flags&AccountFlagWritable != 0,
	}
}

// Flags returns the wire flag byte for the account.
func (a AccountRef) Flags() AccountFlags {
	var flags AccountFlags
	if a.IsSigner {
		flags |= AccountFlagSigner
	}
	if a.IsWritable {
		flags |= AccountFlagWritable
	}

	return flags
}
