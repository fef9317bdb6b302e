package seed

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

// Network is the discriminant byte a 24-word seed carries in front of its core.
type Network byte

const (
	Livenet Network = 0x00
	Testnet Network = 0x01
)

func (n Network) String() string {
	switch n {
	case Livenet:
		return "livenet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("network(0x%02x)", byte(n))
	}
}

// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	return n == Livenet || n == Testnet
}

// ParseNetwork parses "livenet" or "testnet".
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "livenet", "mainnet":
		return Livenet, nil
	case "testnet":
		return Testnet, nil
	}
	return 0, &common.ValidationError{Message: fmt.Sprintf("unknown network %q", s)}
}
