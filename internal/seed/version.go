package seed

import (
	"fmt"

	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
)

// Version distinguishes the 12-word and the 24-word seed formats.
type Version int

const (
	Twelve Version = iota + 1
	TwentyFour
)

const (
	twelveCoreLen     = 16
	twentyFourCoreLen = 27
)

func (v Version) String() string {
	switch v {
	case Twelve:
		return "twelve"
	case TwentyFour:
		return "twenty_four"
	default:
		return fmt.Sprintf("version(%d)", int(v))
	}
}

// CoreLen is the number of key material bytes for the version.
func (v Version) CoreLen() int {
	if v == TwentyFour {
		return twentyFourCoreLen
	}
	return twelveCoreLen
}

// HasNetwork reports whether the encoded entropy starts with a network byte.
func (v Version) HasNetwork() bool {
	return v == TwentyFour
}

func (v Version) variant() mnemonic.Variant {
	if v == TwentyFour {
		return mnemonic.TwentyFour
	}
	return mnemonic.Twelve
}

// WordCount is the length of the recovery phrase for the version.
func (v Version) WordCount() int {
	return v.variant().WordCount
}
