package solana

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
)

// MaxSentinelLabelLength bounds the label of a sentinel. The remaining bytes (at least 16) are
// zero, which no ed25519 key or program derived address realistically has.
const MaxSentinelLabelLength = 16

// Role is the symbolic meaning of a placeholder sentinel.
type Role uint8

const (
	// RoleUnknown is a sentinel shaped address with no registered rule.
	RoleUnknown Role = iota
	// RoleCPIAuthority is the address the governance program signs with when invoking others.
	RoleCPIAuthority
	// RoleOwnerAuthority is the administrative authority of the target program.
	RoleOwnerAuthority
	// RolePayer is the account funding the execution.
	RolePayer
)

func (r Role) String() string {
	switch r {
	case RoleCPIAuthority:
		return "cpi_authority"
	case RoleOwnerAuthority:
		return "owner"
	case RolePayer:
		return "payer"
	case RoleUnknown:
	}

	return "unknown"
}

// Sentinels the remote chain writes in place of addresses it cannot compute.
var (
	CPIAuthorityPlaceholder = MustSentinel("cpi_authority")
	OwnerPlaceholder        = MustSentinel("owner")
	PayerPlaceholder        = MustSentinel("payer")
)

// Sentinel returns the 32 byte sentinel for label: the ASCII label followed by zero bytes.
func Sentinel(label string) (solana.PublicKey, error) {
	if len(label) == 0 || len(label) > MaxSentinelLabelLength {
		return solana.PublicKey{}, fmt.Errorf("sentinel label %q must be 1 to %d bytes", label, MaxSentinelLabelLength)
	}
	for i := 0; i < len(label); i++ {
		if !isPrintable(label[i]) {
			return solana.PublicKey{}, fmt.Errorf("sentinel label %q must be printable ascii", label)
		}
	}

	var key solana.PublicKey
	copy(key[:], label)

	return key, nil
}

// MustSentinel is like Sentinel but panics on an invalid label.
func MustSentinel(label string) solana.PublicKey {
	key, err := Sentinel(label)
	if err != nil {
		panic(err)
	}

	return key
}

// IsSentinel reports whether key lies in the reserved sentinel namespace, registered or not.
func IsSentinel(key solana.PublicKey) bool {
	label := bytes.TrimRight(key[:], "\x00")
	if len(label) == 0 || len(label) > MaxSentinelLabelLength {
		return false
	}
	for _, c := range label {
		if !isPrintable(c) {
			return false
		}
	}

	return true
}

func isPrintable(c byte) bool {
	return c > ' ' && c <= '~'
}

// Address is an account address as understood by the executor: either a literal key or a
// placeholder role. Placeholders only become literal keys through PlaceholderRegistry.Resolve.
type Address struct {
	key  solana.PublicKey
	role Role
	ph   bool
}

// Literal returns an Address for a concrete key.
func Literal(key solana.PublicKey) Address {
	return Address{key: key}
}

// Placeholder returns an Address standing in for role. The sentinel is kept for reporting.
func Placeholder(sentinel solana.PublicKey, role Role) Address {
	return Address{key: sentinel, role: role, ph: true}
}

func (a Address) IsPlaceholder() bool { return a.ph }

// Role returns the placeholder role, RoleUnknown for literals.
func (a Address) Role() Role { return a.role }

// Key returns the literal key or, for placeholders, the sentinel it was read from.
func (a Address) Key() solana.PublicKey { return a.key }

func (a Address) String() string {
	if a.ph {
		return "<" + a.role.String() + ">"
	}

	return a.key.String()
}

// Rule resolves a placeholder role to a concrete key.
type Rule interface {
	Resolve(governanceProgramID, targetProgramID solana.PublicKey) (solana.PublicKey, error)
}

// RuleBase selects the program a DerivedRule derives against.
type RuleBase uint8

const (
	// BaseGovernanceProgram derives against the executing governance program.
	BaseGovernanceProgram RuleBase = iota
	// BaseTargetProgram derives against the program being invoked.
	BaseTargetProgram
)

// DerivedRule resolves to the program derived address of Seeds.
type DerivedRule struct {
	Seeds [][]byte
	Base  RuleBase
}

func (r DerivedRule) Resolve(governanceProgramID, targetProgramID solana.PublicKey) (solana.PublicKey, error) {
	programID := governanceProgramID
	if r.Base == BaseTargetProgram {
		programID = targetProgramID
	}

	return findPDA(programID, r.Seeds...)
}

// ConfiguredRule resolves to a fixed, configured key.
type ConfiguredRule struct {
	Authority solana.PublicKey
}

var errNotConfigured = errors.New("no address configured")

func (r ConfiguredRule) Resolve(_, _ solana.PublicKey) (solana.PublicKey, error) {
	if r.Authority.IsZero() {
		return solana.PublicKey{}, errNotConfigured
	}

	return r.Authority, nil
}

// PlaceholderRegistry maps sentinels to roles and resolution rules. Rules are bound to the
// sentinel, so two sentinels sharing a role resolve independently. It is read-only once built
// and safe for concurrent use.
type PlaceholderRegistry struct {
	governanceProgramID solana.PublicKey
	entries             map[solana.PublicKey]placeholderEntry
}

type placeholderEntry struct {
	role Role
	rule Rule
}

// RegistryOption customizes a PlaceholderRegistry.
type RegistryOption func(*PlaceholderRegistry)

// WithOwnerAuthority resolves the owner placeholder to a configured authority instead of the
// governance PDA.
func WithOwnerAuthority(authority solana.PublicKey) RegistryOption {
	return func(r *PlaceholderRegistry) {
		if !authority.IsZero() {
			r.entries[OwnerPlaceholder] = placeholderEntry{role: RoleOwnerAuthority, rule: ConfiguredRule{Authority: authority}}
		}
	}
}

// WithPayer resolves the payer placeholder to payer.
func WithPayer(payer solana.PublicKey) RegistryOption {
	return func(r *PlaceholderRegistry) {
		r.entries[PayerPlaceholder] = placeholderEntry{role: RolePayer, rule: ConfiguredRule{Authority: payer}}
	}
}

// WithRule registers an additional sentinel labelled with role. It panics when sentinel lies
// outside the sentinel namespace or is already registered, including the built-in sentinels.
func WithRule(sentinel solana.PublicKey, role Role, rule Rule) RegistryOption {
	if !IsSentinel(sentinel) {
		panic(fmt.Sprintf("placeholder %s is not in the sentinel namespace", sentinel))
	}
	if rule == nil {
		panic(fmt.Sprintf("placeholder %s has no rule", sentinel))
	}

	return func(r *PlaceholderRegistry) {
		if _, ok := r.entries[sentinel]; ok {
			panic(fmt.Sprintf("placeholder %s is already registered", sentinel))
		}
		r.entries[sentinel] = placeholderEntry{role: role, rule: rule}
	}
}

// NewPlaceholderRegistry returns the registry used by governanceProgramID: the CPI authority
// is the program's "cpi_authority" PDA, the owner authority defaults to its "governance" PDA,
// and the payer is unresolved until configured.
func NewPlaceholderRegistry(governanceProgramID solana.PublicKey, opts ...RegistryOption) *PlaceholderRegistry {
	r := &PlaceholderRegistry{
		governanceProgramID: governanceProgramID,
		entries: map[solana.PublicKey]placeholderEntry{
			CPIAuthorityPlaceholder: {role: RoleCPIAuthority, rule: DerivedRule{Seeds: [][]byte{CPIAuthoritySeed}}},
			OwnerPlaceholder:        {role: RoleOwnerAuthority, rule: DerivedRule{Seeds: [][]byte{GovernanceSeed}}},
			PayerPlaceholder:        {role: RolePayer, rule: ConfiguredRule{}},
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GovernanceProgramID returns the program the registry resolves for.
func (r *PlaceholderRegistry) GovernanceProgramID() solana.PublicKey {
	return r.governanceProgramID
}

// Classify turns a raw wire address into an Address. It never fails: unknown sentinels are
// classified as RoleUnknown placeholders and rejected by Resolve.
func (r *PlaceholderRegistry) Classify(key solana.PublicKey) Address {
	if entry, ok := r.entries[key]; ok {
		return Placeholder(key, entry.role)
	}
	if IsSentinel(key) {
		return Placeholder(key, RoleUnknown)
	}

	return Literal(key)
}

// Resolve returns the concrete key for addr. Literals resolve to themselves. It performs no
// I/O and always returns the same key for the same inputs.
func (r *PlaceholderRegistry) Resolve(addr Address, targetProgramID solana.PublicKey) (solana.PublicKey, error) {
	if !addr.IsPlaceholder() {
		return addr.Key(), nil
	}

	entry, ok := r.entries[addr.Key()]
	if !ok {
		return solana.PublicKey{}, sdkerrors.NewUnresolvedPlaceholderError(addr.Key(), addr.Role().String(),
			"no resolution rule registered")
	}

	key, err := entry.rule.Resolve(r.governanceProgramID, targetProgramID)
	if err != nil {
		return solana.PublicKey{}, sdkerrors.NewUnresolvedPlaceholderError(addr.Key(), entry.role.String(), err.Error())
	}

	return key, nil
}

// IsGovernanceSigner reports whether the governance program can sign for addr, which is the
// case for placeholders derived from the governance program itself.
func (r *PlaceholderRegistry) IsGovernanceSigner(addr Address) bool {
	if !addr.IsPlaceholder() {
		return false
	}
	entry, ok := r.entries[addr.Key()]
	if !ok {
		return false
	}
	derived, ok := entry.rule.(DerivedRule)

	return ok && derived.Base == BaseGovernanceProgram
}
