package govrelay

import (
	"fmt"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
)

// InvalidConfigValueError is returned when a configuration value cannot be used.
type InvalidConfigValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidConfigValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

func NewInvalidConfigValueError(key, value, reason string) *InvalidConfigValueError {
	return &InvalidConfigValueError{Key: key, Value: value, Reason: reason}
}

// UnsupportedBridgeError is returned when a message is delivered through a bridge the relay is
// not configured for. It is an unauthorized origin.
type UnsupportedBridgeError struct {
	Bridge   string
	Expected string
}

func (e *UnsupportedBridgeError) Error() string {
	return fmt.Sprintf("unsupported bridge %s, relay is configured for %s", e.Bridge, e.Expected)
}

func (e *UnsupportedBridgeError) Is(target error) bool { return target == sdkerrors.ErrUnauthorizedOrigin }

func NewUnsupportedBridgeError(bridge, expected string) *UnsupportedBridgeError {
	return &UnsupportedBridgeError{Bridge: bridge, Expected: expected}
}
