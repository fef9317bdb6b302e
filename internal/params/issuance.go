package params

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
)

const maxIssuanceQuantity = 100

// IssuanceParams issues one bitmark per nonce. Each nonce is packed and signed
// separately, so signing yields one signature per nonce.
type IssuanceParams struct {
	assetID    []byte
	owner      *keys.Address
	nonces     []uint64
	signatures [][]byte
}

// NewIssuanceParams issues the asset once for every nonce. Nonces must be
// unique.
func NewIssuanceParams(assetID string, owner *keys.Address, nonces ...uint64) (*IssuanceParams, error) {
	if err := common.FirstInvalid(
		common.CheckValid(common.IsHexOfLen(assetID, assetIDSize), "invalid asset id"),
		common.CheckValid(owner != nil, "invalid owner"),
		common.CheckValid(len(nonces) > 0, "invalid quantity"),
		common.CheckValid(len(nonces) <= maxIssuanceQuantity, "quantity exceeds the issuance limit"),
	); err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(nonces))
	for _, n := range nonces {
		if _, dup := seen[n]; dup {
			return nil, &common.ValidationError{Message: fmt.Sprintf("duplicate nonce %d", n)}
		}
		seen[n] = struct{}{}
	}

	id, err := common.DecodeHex("asset id", assetID)
	if err != nil {
		return nil, err
	}
	return &IssuanceParams{
		assetID: id,
		owner:   owner,
		nonces:  append([]uint64(nil), nonces...),
	}, nil
}

// NewRandomIssuanceParams issues quantity bitmarks with random nonces.
func NewRandomIssuanceParams(assetID string, owner *keys.Address, quantity int) (*IssuanceParams, error) {
	if err := common.FirstInvalid(
		common.CheckValid(quantity > 0, "invalid quantity"),
		common.CheckValid(quantity <= maxIssuanceQuantity, "quantity exceeds the issuance limit"),
	); err != nil {
		return nil, err
	}

	nonces := make([]uint64, 0, quantity)
	seen := make(map[uint64]struct{}, quantity)
	var buf [8]byte
	for len(nonces) < quantity {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
		n := binary.BigEndian.Uint64(buf[:])
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		nonces = append(nonces, n)
	}
	return NewIssuanceParams(assetID, owner, nonces...)
}

func (p *IssuanceParams) Nonces() []uint64 {
	return append([]uint64(nil), p.nonces...)
}

// Packs returns one payload per nonce: tag, asset id, owner, nonce.
func (p *IssuanceParams) Packs() [][]byte {
	out := make([][]byte, 0, len(p.nonces))
	for _, n := range p.nonces {
		buf := appendUvarint(nil, tagIssue)
		buf = appendBytes(buf, p.assetID)
		buf = appendBytes(buf, p.owner.Pack())
		out = append(out, appendUvarint(buf, n))
	}
	return out
}

// Sign signs every payload. On failure the previous signatures are kept.
func (p *IssuanceParams) Sign(signer Signer) error {
	if signer == nil {
		return &common.ValidationError{Message: "signer is required"}
	}
	packs := p.Packs()
	sigs := make([][]byte, 0, len(packs))
	for _, packed := range packs {
		sig, err := signer.Sign(packed)
		if err != nil {
			return fmt.Errorf("failed to sign issue: %w", err)
		}
		sigs = append(sigs, sig)
	}
	p.signatures = sigs
	return nil
}

// Signatures returns one signature per nonce, nil before signing.
func (p *IssuanceParams) Signatures() [][]byte {
	if len(p.signatures) == 0 {
		return nil
	}
	out := make([][]byte, len(p.signatures))
	for i, s := range p.signatures {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

func (p *IssuanceParams) IsSigned() bool {
	return len(p.signatures) == len(p.nonces) && len(p.signatures) > 0
}

// TxIDs returns the transaction id of every issue.
func (p *IssuanceParams) TxIDs() ([]string, error) {
	if !p.IsSigned() {
		return nil, common.NotSigned()
	}
	packs := p.Packs()
	ids := make([]string, len(packs))
	for i, packed := range packs {
		ids[i] = txID(packed, p.signatures[i])
	}
	return ids, nil
}

type issueJSON struct {
	AssetID   string `json:"asset_id"`
	Owner     string `json:"owner"`
	Nonce     uint64 `json:"nonce"`
	Signature string `json:"signature"`
}

func (p *IssuanceParams) ToCanonicalJSON() ([]byte, error) {
	if !p.IsSigned() {
		return nil, common.NotSigned()
	}
	issues := make([]issueJSON, len(p.nonces))
	assetID := hex.EncodeToString(p.assetID)
	owner := p.owner.String()
	for i, n := range p.nonces {
		issues[i] = issueJSON{
			AssetID:   assetID,
			Owner:     owner,
			Nonce:     n,
			Signature: hex.EncodeToString(p.signatures[i]),
		}
	}
	return marshal(struct {
		Issues []issueJSON `json:"issues"`
	}{issues})
}
