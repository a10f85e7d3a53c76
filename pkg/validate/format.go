package validate

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"exchange-form/pkg/catalog"
)

// Format is the advisory outcome of an address format check.
type Format int

const (
	FormatUnchecked Format = iota // No checker for the destination network
	FormatValid
	FormatInvalid
)

func (f Format) String() string {
	switch f {
	case FormatValid:
		return "valid"
	case FormatInvalid:
		return "invalid"
	default:
		return "unchecked"
	}
}

// FormatChecker is the external address-format collaborator. Its answer is a
// hint for the view; it never feeds into form validity.
type FormatChecker interface {
	CheckFormat(addr string, dest catalog.Currency) Format
}

// NetworkFormats checks EVM and Solana addresses and leaves other networks unchecked.
type NetworkFormats struct{}

// CheckFormat implements FormatChecker.
func (NetworkFormats) CheckFormat(addr string, dest catalog.Currency) Format {
	if addr == "" {
		return FormatUnchecked
	}

	switch strings.ToUpper(dest.Network) {
	case "ETH", "C-CHAIN":
		if common.IsHexAddress(addr) {
			return FormatValid
		}
		return FormatInvalid
	case "SOL":
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return FormatInvalid
		}
		return FormatValid
	default:
		return FormatUnchecked
	}
}
