package types

import (
	"fmt"
	"strings"
)

// Bridge identifies which cross-chain messaging bridge delivered a governance payload. The
// caller always passes it explicitly; the codec never guesses it from the bytes.
type Bridge string

const (
	// BridgeLayerZero payloads carry the remote origin caller as their first field.
	BridgeLayerZero Bridge = "layerzero"

	// BridgeWormhole payloads carry the governance program id as their first field.
	BridgeWormhole Bridge = "wormhole"
)

// Bridges lists all supported bridges.
var Bridges = []Bridge{BridgeLayerZero, BridgeWormhole}

// ParseBridge converts a case-insensitive bridge name into a Bridge.
func ParseBridge(s string) (Bridge, error) {
	b := Bridge(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BridgeLayerZero, BridgeWormhole:
		return b, nil
	}

	return "", fmt.Errorf("unknown bridge %q, expected one of %v", s, Bridges)
}

func (b Bridge) String() string {
	return string(b)
}
