package govrelay

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/smartcontractkit/govrelay/internal/utils/safecast"
	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
	"github.com/smartcontractkit/govrelay/types"
)

// Configuration keys read by LoadConfigFromEnv.
const (
	EnvBridge              = "BRIDGE"
	EnvGovernanceProgramID = "GOVERNANCE_PROGRAM_ID"
	EnvAdminOrigin         = "ADMIN_ORIGIN"
	EnvSourceChainSelector = "SOURCE_CHAIN_SELECTOR"
	EnvWormholeChainID     = "WORMHOLE_CHAIN_ID"
	EnvOwnerAuthority      = "OWNER_AUTHORITY"
	EnvPayer               = "PAYER"
	EnvRPCURL              = "RPC_URL"
	EnvAllowedSelectors    = "ALLOWED_SELECTORS"
)

// Config holds the process-wide constants of a governance relay. It is loaded once and never
// modified afterwards.
type Config struct {
	Bridge              types.Bridge     `validate:"required,oneof=layerzero wormhole"`
	GovernanceProgramID solana.PublicKey `validate:"required"`

	// AdminOrigin is the only EVM sender allowed to emit LayerZero governance messages.
	AdminOrigin         common.Address      `validate:"required_if=Bridge layerzero"`
	SourceChainSelector types.ChainSelector `validate:"required_if=Bridge layerzero"`

	// WormholeChainID is the chain general purpose governance payloads must be addressed to.
	WormholeChainID vaa.ChainID

	OwnerAuthority   solana.PublicKey
	Payer            solana.PublicKey
	RPCURL           string `validate:"omitempty,url"`
	AllowedSelectors solanasdk.SelectorAllowList
}

// Validate checks the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Bridge == types.BridgeLayerZero && !c.SourceChainSelector.IsEVM() {
		return NewInvalidConfigValueError(EnvSourceChainSelector, fmt.Sprint(c.SourceChainSelector),
			"LayerZero governance must originate on an EVM chain")
	}

	return nil
}

// AdminOriginCaller returns AdminOrigin left padded to the 32 byte origin caller of LayerZero
// messages.
func (c *Config) AdminOriginCaller() [32]byte {
	return [32]byte(common.BytesToHash(c.AdminOrigin.Bytes()))
}

// PlaceholderRegistry returns the placeholder registry of the configured governance program.
func (c *Config) PlaceholderRegistry() *solanasdk.PlaceholderRegistry {
	opts := []solanasdk.RegistryOption{solanasdk.WithOwnerAuthority(c.OwnerAuthority)}
	if !c.Payer.IsZero() {
		opts = append(opts, solanasdk.WithPayer(c.Payer))
	}

	return solanasdk.NewPlaceholderRegistry(c.GovernanceProgramID, opts...)
}

// LoadConfigFromEnv reads the configuration from the process environment, falling back to the
// dotenv file at path when it is not empty. Process variables take precedence over the file.
func LoadConfigFromEnv(path string) (*Config, error) {
	values := map[string]string{}
	if path != "" {
		var err error
		values, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", path, err)
		}
	}

	for _, key := range []string{
		EnvBridge, EnvGovernanceProgramID, EnvAdminOrigin, EnvSourceChainSelector, EnvWormholeChainID,
		EnvOwnerAuthority, EnvPayer, EnvRPCURL, EnvAllowedSelectors,
	} {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}

	return NewConfigFromValues(values)
}

// NewConfigFromValues parses and validates a configuration from key/value pairs.
func NewConfigFromValues(values map[string]string) (*Config, error) {
	cfg := &Config{WormholeChainID: vaa.ChainIDSolana}

	var err error
	if cfg.Bridge, err = types.ParseBridge(values[EnvBridge]); err != nil {
		return nil, NewInvalidConfigValueError(EnvBridge, values[EnvBridge], err.Error())
	}
	if cfg.GovernanceProgramID, err = parsePublicKey(values, EnvGovernanceProgramID); err != nil {
		return nil, err
	}
	if cfg.OwnerAuthority, err = parsePublicKey(values, EnvOwnerAuthority); err != nil {
		return nil, err
	}
	if cfg.Payer, err = parsePublicKey(values, EnvPayer); err != nil {
		return nil, err
	}

	if origin := values[EnvAdminOrigin]; origin != "" {
		if !common.IsHexAddress(origin) {
			return nil, NewInvalidConfigValueError(EnvAdminOrigin, origin, "not an EVM address")
		}
		cfg.AdminOrigin = common.HexToAddress(origin)
	}

	if selector := values[EnvSourceChainSelector]; selector != "" {
		sel, cerr := cast.ToUint64E(selector)
		if cerr != nil {
			return nil, NewInvalidConfigValueError(EnvSourceChainSelector, selector, cerr.Error())
		}
		cfg.SourceChainSelector = types.ChainSelector(sel)
	}

	if chainID := values[EnvWormholeChainID]; chainID != "" {
		id, cerr := cast.ToUint64E(chainID)
		if cerr != nil {
			return nil, NewInvalidConfigValueError(EnvWormholeChainID, chainID, cerr.Error())
		}
		narrowed, cerr := safecast.Uint64ToUint16(id)
		if cerr != nil {
			return nil, NewInvalidConfigValueError(EnvWormholeChainID, chainID, cerr.Error())
		}
		cfg.WormholeChainID = vaa.ChainID(narrowed)
	}

	cfg.RPCURL = values[EnvRPCURL]

	if cfg.AllowedSelectors, err = ParseSelectorAllowList(values[EnvAllowedSelectors]); err != nil {
		return nil, NewInvalidConfigValueError(EnvAllowedSelectors, values[EnvAllowedSelectors], err.Error())
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ParseSelectorAllowList parses entries of the form "<program>:<handler>[,<handler>...]"
// separated by semicolons. An empty string yields a nil list.
func ParseSelectorAllowList(s string) (solanasdk.SelectorAllowList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	allowList := solanasdk.SelectorAllowList{}
	for _, entry := range strings.Split(s, ";") {
		program, handlers, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found || handlers == "" {
			return nil, fmt.Errorf("entry %q must be <program>:<handler>[,<handler>...]", entry)
		}
		programID, err := solana.PublicKeyFromBase58(strings.TrimSpace(program))
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		for _, handler := range strings.Split(handlers, ",") {
			if handler = strings.TrimSpace(handler); handler != "" {
				allowList[programID] = append(allowList[programID], handler)
			}
		}
	}

	return allowList, nil
}

func parsePublicKey(values map[string]string, key string) (solana.PublicKey, error) {
	value := strings.TrimSpace(values[key])
	if value == "" {
		return solana.PublicKey{}, nil
	}

	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, NewInvalidConfigValueError(key, value, err.Error())
	}

	return pk, nil
}
