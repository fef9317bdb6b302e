package keys

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

// Key variant bits of a packed account number.
const (
	variantPublicKey = 0x01
	variantTestnet   = 0x02
	variantTypeShift = 4
	keyTypeEd25519   = 0x01

	checksumLen = 4
)

// Address is an account number: an ed25519 public key on one network.
type Address struct {
	publicKey []byte
	network   seed.Network
}

// NewAddress validates publicKey and network.
func NewAddress(publicKey []byte, network seed.Network) (*Address, error) {
	if err := common.FirstInvalid(
		common.CheckValid(len(publicKey) == PublicKeySize, "invalid public key length"),
		common.CheckValid(network.Valid(), "invalid network"),
	); err != nil {
		return nil, err
	}
	return &Address{
		publicKey: append([]byte(nil), publicKey...),
		network:   network,
	}, nil
}

func (a *Address) keyVariant() uint64 {
	v := uint64(keyTypeEd25519<<variantTypeShift | variantPublicKey)
	if a.network == seed.Testnet {
		v |= variantTestnet
	}
	return v
}

// Pack returns the fixed-width encoding used inside signed records:
// uvarint(keyVariant) followed by the public key.
func (a *Address) Pack() []byte {
	buf := binary.AppendUvarint(nil, a.keyVariant())
	return append(buf, a.publicKey...)
}

// String returns BASE58(pack || SHA3-256(pack)[:4]).
func (a *Address) String() string {
	packed := a.Pack()
	sum := sha3.Sum256(packed)
	return base58.Encode(append(packed, sum[:checksumLen]...))
}

func (a *Address) PublicKey() []byte {
	return append([]byte(nil), a.publicKey...)
}

func (a *Address) Network() seed.Network {
	return a.network
}

// Equal reports whether both addresses name the same key on the same network.
func (a *Address) Equal(other *Address) bool {
	return other != nil && a.network == other.network && bytes.Equal(a.publicKey, other.publicKey)
}

// ParseAddress decodes and checks an account number string.
func ParseAddress(s string) (*Address, error) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) == 0 {
		return nil, &common.ValidationError{Message: "invalid address encoding"}
	}

	variant, n := binary.Uvarint(raw)
	if n <= 0 {
		return nil, &common.ValidationError{Message: "invalid address key variant"}
	}
	if err := common.FirstInvalid(
		common.CheckValid(variant&variantPublicKey != 0, "address is not a public key"),
		common.CheckValid(variant>>variantTypeShift == keyTypeEd25519, fmt.Sprintf("unsupported key type %d", variant>>variantTypeShift)),
		common.CheckValid(len(raw) == n+PublicKeySize+checksumLen, "invalid address length"),
	); err != nil {
		return nil, err
	}

	packed := raw[:n+PublicKeySize]
	sum := sha3.Sum256(packed)
	if err := common.CheckValid(bytes.Equal(sum[:checksumLen], raw[len(packed):]), "invalid address checksum"); err != nil {
		return nil, err
	}

	network := seed.Livenet
	if variant&variantTestnet != 0 {
		network = seed.Testnet
	}
	return NewAddress(raw[n:len(packed)], network)
}

// MarshalText implements encoding.TextMarshaler.
func (a *Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
