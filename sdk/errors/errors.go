package sdkerrors

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Every error returned while processing a governance message matches exactly one of these
// kinds through errors.Is.
var (
	ErrMalformedPayload      = errors.New("malformed payload")
	ErrTrailingBytes         = errors.New("trailing bytes")
	ErrInvalidAccountFlags   = errors.New("invalid account flags")
	ErrUnauthorizedOrigin    = errors.New("unauthorized origin")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
	ErrInvocationFailure     = errors.New("invocation failure")
)

// ErrInvocationFailure comes first because it wraps errors from outside the taxonomy.
var kinds = []error{
	ErrInvocationFailure,
	ErrMalformedPayload,
	ErrTrailingBytes,
	ErrInvalidAccountFlags,
	ErrUnauthorizedOrigin,
	ErrInvalidTarget,
	ErrUnresolvedPlaceholder,
}

// KindOf returns the error kind err belongs to, or nil when err is not part of the taxonomy.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// MalformedPayloadError is returned when a fixed field or length prefixed section does not fit
// in the remaining buffer.
type MalformedPayloadError struct {
	Field  string
	Offset int
	Need   uint64
	Have   int
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %s at offset %d needs %d bytes, %d remaining",
		e.Field, e.Offset, e.Need, e.Have)
}

func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }

func NewMalformedPayloadError(field string, offset int, need uint64, have int) *MalformedPayloadError {
	return &MalformedPayloadError{Field: field, Offset: offset, Need: need, Have: have}
}

// TrailingBytesError is returned when bytes remain after a complete message.
type TrailingBytesError struct {
	Remaining int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("trailing bytes: %d bytes left after message", e.Remaining)
}

func (e *TrailingBytesError) Is(target error) bool { return target == ErrTrailingBytes }

func NewTrailingBytesError(remaining int) *TrailingBytesError {
	return &TrailingBytesError{Remaining: remaining}
}

// InvalidAccountFlagsError is returned when an account flag byte has undefined bits set.
type InvalidAccountFlagsError struct {
	AccountIndex int
	Flags        uint8
}

func (e *InvalidAccountFlagsError) Error() string {
	return fmt.Sprintf("invalid account flags: account %d has flags %08b", e.AccountIndex, e.Flags)
}

func (e *InvalidAccountFlagsError) Is(target error) bool { return target == ErrInvalidAccountFlags }

func NewInvalidAccountFlagsError(accountIndex int, flags uint8) *InvalidAccountFlagsError {
	return &InvalidAccountFlagsError{AccountIndex: accountIndex, Flags: flags}
}

// UnauthorizedOriginError is returned when the origin field of a message does not match the
// configured authority.
type UnauthorizedOriginError struct {
	Field    string
	Received string
	Expected string
}

func (e *UnauthorizedOriginError) Error() string {
	return fmt.Sprintf("unauthorized origin: %s is %s, expected %s", e.Field, e.Received, e.Expected)
}

func (e *UnauthorizedOriginError) Is(target error) bool { return target == ErrUnauthorizedOrigin }

func NewUnauthorizedOriginError(field, received, expected string) *UnauthorizedOriginError {
	return &UnauthorizedOriginError{Field: field, Received: received, Expected: expected}
}

// InvalidTargetError is returned when the instruction target or its account list cannot be
// executed.
type InvalidTargetError struct {
	ProgramID solana.PublicKey
	Reason    string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %s: %s", e.ProgramID, e.Reason)
}

func (e *InvalidTargetError) Is(target error) bool { return target == ErrInvalidTarget }

func NewInvalidTargetError(programID solana.PublicKey, reason string) *InvalidTargetError {
	return &InvalidTargetError{ProgramID: programID, Reason: reason}
}

// UnresolvedPlaceholderError is returned when a sentinel address has no resolution.
type UnresolvedPlaceholderError struct {
	Address solana.PublicKey
	Role    string
	Reason  string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder %s (%x): %s", e.Role, e.Address[:], e.Reason)
}

func (e *UnresolvedPlaceholderError) Is(target error) bool { return target == ErrUnresolvedPlaceholder }

func NewUnresolvedPlaceholderError(address solana.PublicKey, role, reason string) *UnresolvedPlaceholderError {
	return &UnresolvedPlaceholderError{Address: address, Role: role, Reason: reason}
}

// InvocationFailureError wraps the error reported by the target program or the host runtime.
type InvocationFailureError struct {
	ProgramID solana.PublicKey
	Err       error
}

func (e *InvocationFailureError) Error() string {
	return fmt.Sprintf("invocation of %s failed: %v", e.ProgramID, e.Err)
}

func (e *InvocationFailureError) Is(target error) bool { return target == ErrInvocationFailure }

func (e *InvocationFailureError) Unwrap() error { return e.Err }

func NewInvocationFailureError(programID solana.PublicKey, err error) *InvocationFailureError {
	return &InvocationFailureError{ProgramID: programID, Err: err}
}
