package govrelay

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/smartcontractkit/govrelay/sdk"
	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
	solanasdk "github.com/smartcontractkit/govrelay/sdk/solana"
	"github.com/smartcontractkit/govrelay/sdk/wormhole"
	"github.com/smartcontractkit/govrelay/types"
)

// Processor runs governance payloads through decoding, validation and execution. A failure at
// any stage aborts that payload only and is never retried.
type Processor struct {
	bridge          types.Bridge
	wormholeChainID vaa.ChainID
	validator       *Validator
	executor        *solanasdk.Executor
}

// NewProcessor returns a Processor for cfg that invokes instructions through invoker.
func NewProcessor(cfg *Config, invoker solanasdk.Invoker) *Processor {
	return &Processor{
		bridge:          cfg.Bridge,
		wormholeChainID: cfg.WormholeChainID,
		validator:       NewValidator(cfg),
		executor:        solanasdk.NewExecutor(cfg.PlaceholderRegistry(), invoker, cfg.AllowedSelectors),
	}
}

// Process decodes payload in the layout of the configured bridge, validates it and executes it.
func (p *Processor) Process(ctx context.Context, payload []byte) (types.MinedTransaction, error) {
	msg, err := p.Check(payload)
	if err != nil {
		return types.MinedTransaction{}, p.reject(ctx, err)
	}

	tx, err := p.executor.Execute(ctx, msg)
	if err != nil {
		return types.MinedTransaction{}, p.reject(ctx, err)
	}
	sdk.LoggerFrom(ctx).Infof("executed %s governance message for %s with %d accounts",
		msg.Bridge(), msg.Target(), len(msg.AccountRefs()))

	return tx, nil
}

// ProcessVAA opens a general purpose governance VAA and processes the message it carries.
// Guardian signatures are verified when guardians is not empty.
func (p *Processor) ProcessVAA(ctx context.Context, data []byte, guardians []common.Address) (types.MinedTransaction, error) {
	if p.bridge != types.BridgeWormhole {
		return types.MinedTransaction{}, p.reject(ctx, NewUnsupportedBridgeError(types.BridgeWormhole.String(), p.bridge.String()))
	}

	payload, err := wormhole.OpenVAA(p.wormholeChainID, data, guardians)
	if err != nil {
		return types.MinedTransaction{}, p.reject(ctx, err)
	}

	return p.Process(ctx, payload)
}

// Check decodes and validates payload without executing it.
func (p *Processor) Check(payload []byte) (types.GovernanceMessage, error) {
	msg, err := solanasdk.Decode(p.bridge, payload)
	if err != nil {
		return nil, err
	}
	if err = p.validator.Validate(msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Prepare decodes, validates and resolves payload without executing it.
func (p *Processor) Prepare(payload []byte) (types.ResolvedInstruction, error) {
	msg, err := p.Check(payload)
	if err != nil {
		return types.ResolvedInstruction{}, err
	}

	return p.executor.Prepare(msg)
}

func (p *Processor) reject(ctx context.Context, err error) error {
	kind := "unclassified"
	if k := sdkerrors.KindOf(err); k != nil {
		kind = k.Error()
	}
	sdk.LoggerFrom(ctx).Warnf("rejected %s governance message (%s): %v", p.bridge, kind, err)

	return fmt.Errorf("%s governance message rejected: %w", p.bridge, err)
}
