package params

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

const (
	fingerprintPrefix = "01"
	assetIDSize       = 64
	linkSize          = 32
)

// Fingerprint hashes asset content: "01" + hex(SHA3-512(content)).
func Fingerprint(r io.Reader) (string, error) {
	h := sha3.New512()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to read asset content: %w", err)
	}
	return fingerprintPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

// AssetID is hex(SHA3-512(fingerprint)).
func AssetID(fingerprint string) (string, error) {
	if err := common.CheckValid(fingerprint != "", "invalid fingerprint"); err != nil {
		return "", err
	}
	sum := sha3.Sum512([]byte(fingerprint))
	return hex.EncodeToString(sum[:]), nil
}
