package baker

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownVariant = errors.New("baker: unknown variant")

// Variant selects how the stretched half of the square is put back.
type Variant int

const (
	Unfolded Variant = iota
	Folded
)

func (v Variant) String() string {
	switch v {
	case Unfolded:
		return "unfolded"
	case Folded:
		return "folded"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Valid reports whether v is one of the two defined variants.
func (v Variant) Valid() bool {
	return v == Unfolded || v == Folded
}

// VariantFromFolded maps the boolean command-line switch to a Variant.
func VariantFromFolded(folded bool) Variant {
	if folded {
		return Folded
	}
	return Unfolded
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unfolded", "cut", "":
		return Unfolded, nil
	case "folded", "fold":
		return Folded, nil
	}
	return Unfolded, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

func Variants() []Variant {
	return []Variant{Unfolded, Folded}
}
