// Package params builds, signs and renders the records an account submits.
//
// Every record packs into a byte string that is the exact signed payload.
// Fields are written in a fixed order per record type; changing the order
// changes the payload and breaks every existing signature.
package params

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Record type tags, the first uvarint of every packed record.
const (
	tagRegistration  uint64 = 0x02
	tagIssue         uint64 = 0x03
	tagTransfer      uint64 = 0x04
	tagTransferOffer uint64 = 0x05
	tagShare         uint64 = 0x08
	tagShareGrant    uint64 = 0x09
)

// noEscrow follows the link of unescrowed transfers.
const noEscrow byte = 0x00

func appendUvarint(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

// appendBytes writes a length-prefixed byte string.
func appendBytes(buf, b []byte) []byte {
	buf = appendUvarint(buf, uint64(len(b)))
	return append(buf, b...)
}

// txID is the transaction id of a signed payload.
func txID(packed, sig []byte) string {
	sum := sha3.Sum256(appendBytes(append([]byte(nil), packed...), sig))
	return hex.EncodeToString(sum[:])
}

func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}
