package solana

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/govrelay/sdk/errors"
)

// DiscriminatorLength is the size of an Anchor instruction selector.
const DiscriminatorLength = 8

// discriminatorNamespace is the Anchor namespace of instruction handlers.
const discriminatorNamespace = "global:"

// Discriminator returns the Anchor selector of the instruction handler name: the first eight
// bytes of sha256("global:<snake_case_name>"). camelCase names are converted first.
func Discriminator(name string) [DiscriminatorLength]byte {
	hash := sha256.Sum256([]byte(discriminatorNamespace + ToSnakeCase(name)))

	var out [DiscriminatorLength]byte
	copy(out[:], hash[:DiscriminatorLength])

	return out
}

// InstructionData returns the selector of name followed by the Borsh encoding of args.
func InstructionData(name string, args ...any) ([]byte, error) {
	discriminator := Discriminator(name)

	buf := bytes.NewBuffer(discriminator[:])
	enc := bin.NewBorshEncoder(buf)
	for i, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return nil, fmt.Errorf("unable to encode argument %d of %s: %w", i, name, err)
		}
	}

	return buf.Bytes(), nil
}

// ToSnakeCase converts a camelCase or PascalCase identifier to snake_case. snake_case input is
// returned unchanged.
func ToSnakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// SelectorAllowList restricts the instruction handlers governance may call per target program.
// Programs missing from the list are not restricted.
type SelectorAllowList map[solana.PublicKey][]string

// Check returns an InvalidTargetError when programID is listed and data does not start with
// the selector of one of its allowed handlers.
func (l SelectorAllowList) Check(programID solana.PublicKey, data []byte) error {
	allowed, ok := l[programID]
	if !ok {
		return nil
	}
	if len(data) < DiscriminatorLength {
		return sdkerrors.NewInvalidTargetError(programID, "instruction data is shorter than a selector")
	}
	for _, name := range allowed {
		discriminator := Discriminator(name)
		if bytes.Equal(data[:DiscriminatorLength], discriminator[:]) {
			return nil
		}
	}

	return sdkerrors.NewInvalidTargetError(programID,
		fmt.Sprintf("selector %x is not one of %v", data[:DiscriminatorLength], allowed))
}
