package params

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
)

const (
	maxNameLength        = 64
	maxFingerprintLength = 1024
	maxMetadataLength    = 2048

	metadataSeparator = "\u0000"
)

// RegistrationParams registers an asset under its fingerprint.
type RegistrationParams struct {
	name        string
	fingerprint string
	metadata    string
	registrant  *keys.Address
	signature
}

// NewRegistrationParams validates the asset fields. Metadata keys are sorted
// before packing.
func NewRegistrationParams(name, fingerprint string, metadata map[string]string, registrant *keys.Address) (*RegistrationParams, error) {
	packed, err := packMetadata(metadata)
	if err != nil {
		return nil, err
	}
	if err := common.FirstInvalid(
		common.CheckValid(name != "", "invalid name"),
		common.CheckValid(utf8.RuneCountInString(name) <= maxNameLength, "name is too long"),
		common.CheckValid(fingerprint != "", "invalid fingerprint"),
		common.CheckValid(len(fingerprint) <= maxFingerprintLength, "fingerprint is too long"),
		common.CheckValid(len(packed) <= maxMetadataLength, "metadata is too long"),
		common.CheckValid(registrant != nil, "invalid registrant"),
	); err != nil {
		return nil, err
	}
	return &RegistrationParams{
		name:        name,
		fingerprint: fingerprint,
		metadata:    packed,
		registrant:  registrant,
	}, nil
}

func packMetadata(metadata map[string]string) (string, error) {
	names := make([]string, 0, len(metadata))
	for k, v := range metadata {
		if err := common.FirstInvalid(
			common.CheckValid(k != "", "metadata key is empty"),
			common.CheckValid(!strings.Contains(k, metadataSeparator) && !strings.Contains(v, metadataSeparator), "metadata contains a NUL character"),
		); err != nil {
			return "", err
		}
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)*2)
	for _, k := range names {
		parts = append(parts, k, metadata[k])
	}
	return strings.Join(parts, metadataSeparator), nil
}

// AssetID of the registered fingerprint.
func (p *RegistrationParams) AssetID() string {
	id, _ := AssetID(p.fingerprint)
	return id
}

// Pack: tag, name, fingerprint, metadata, registrant.
func (p *RegistrationParams) Pack() []byte {
	buf := appendUvarint(nil, tagRegistration)
	buf = appendBytes(buf, []byte(p.name))
	buf = appendBytes(buf, []byte(p.fingerprint))
	buf = appendBytes(buf, []byte(p.metadata))
	return appendBytes(buf, p.registrant.Pack())
}

func (p *RegistrationParams) Sign(signer Signer) error {
	return p.signature.sign(signer, p.Pack())
}

func (p *RegistrationParams) TxID() (string, error) {
	if !p.IsSigned() {
		return "", common.NotSigned()
	}
	return txID(p.Pack(), p.value), nil
}

func (p *RegistrationParams) ToCanonicalJSON() ([]byte, error) {
	sig, err := p.hex()
	if err != nil {
		return nil, err
	}
	return marshal(struct {
		Fingerprint string `json:"fingerprint"`
		Name        string `json:"name"`
		Metadata    string `json:"metadata"`
		Registrant  string `json:"registrant"`
		Signature   string `json:"signature"`
	}{p.fingerprint, p.name, p.metadata, p.registrant.String(), sig})
}
