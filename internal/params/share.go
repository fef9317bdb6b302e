package params

import (
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
)

const shareIDSize = 32

// ShareParams converts a bitmark into a fungible balance of quantity shares.
type ShareParams struct {
	link     []byte
	quantity int64
	signature
}

func NewShareParams(link string, quantity int64) (*ShareParams, error) {
	if err := common.FirstInvalid(
		common.CheckValid(common.IsHexOfLen(link, linkSize), "invalid link"),
		common.CheckValid(quantity > 0, "invalid quantity"),
	); err != nil {
		return nil, err
	}
	b, err := common.DecodeHex("link", link)
	if err != nil {
		return nil, err
	}
	return &ShareParams{link: b, quantity: quantity}, nil
}

// Pack: tag, link, quantity.
func (p *ShareParams) Pack() []byte {
	buf := appendUvarint(nil, tagShare)
	buf = appendBytes(buf, p.link)
	return appendUvarint(buf, uint64(p.quantity))
}

func (p *ShareParams) Sign(signer Signer) error {
	return p.sign(signer, p.Pack())
}

// ShareID is the transaction id of the signed share record.
func (p *ShareParams) ShareID() (string, error) {
	if !p.IsSigned() {
		return "", common.NotSigned()
	}
	return txID(p.Pack(), p.value), nil
}

func (p *ShareParams) ToCanonicalJSON() ([]byte, error) {
	sig, err := p.hex()
	if err != nil {
		return nil, err
	}
	type record struct {
		Link      string `json:"link"`
		Quantity  int64  `json:"quantity"`
		Signature string `json:"signature"`
	}
	return marshal(struct {
		Record record `json:"record"`
	}{record{encodeHex(p.link), p.quantity, sig}})
}

// ShareGrantingParams offers quantity shares to a receiver. The grant expires
// at beforeBlock.
type ShareGrantingParams struct {
	shareID     []byte
	quantity    int64
	owner       *keys.Address
	receiver    *keys.Address
	beforeBlock int64
	extraInfo   ExtraInfo
	signature
}

func NewShareGrantingParams(shareID string, quantity int64, owner, receiver *keys.Address, beforeBlock int64) (*ShareGrantingParams, error) {
	if err := common.FirstInvalid(
		common.CheckValid(common.IsHexOfLen(shareID, shareIDSize), "invalid share id"),
		common.CheckValid(quantity > 0, "invalid quantity"),
		common.CheckValid(owner != nil, "invalid owner"),
		common.CheckValid(receiver != nil, "invalid receiver"),
		common.CheckValid(beforeBlock >= 0, "invalid before block"),
	); err != nil {
		return nil, err
	}
	id, err := common.DecodeHex("share id", shareID)
	if err != nil {
		return nil, err
	}
	return &ShareGrantingParams{
		shareID:     id,
		quantity:    quantity,
		owner:       owner,
		receiver:    receiver,
		beforeBlock: beforeBlock,
	}, nil
}

// SetExtraInfo attaches data that travels with the grant but is not signed.
func (p *ShareGrantingParams) SetExtraInfo(info ExtraInfo) {
	p.extraInfo = info
}

// Pack: tag, share id, quantity, owner, receiver, before block.
func (p *ShareGrantingParams) Pack() []byte {
	buf := appendUvarint(nil, tagShareGrant)
	buf = appendBytes(buf, p.shareID)
	buf = appendUvarint(buf, uint64(p.quantity))
	buf = appendBytes(buf, p.owner.Pack())
	buf = appendBytes(buf, p.receiver.Pack())
	return appendUvarint(buf, uint64(p.beforeBlock))
}

func (p *ShareGrantingParams) Sign(signer Signer) error {
	return p.sign(signer, p.Pack())
}

func (p *ShareGrantingParams) ToCanonicalJSON() ([]byte, error) {
	sig, err := p.hex()
	if err != nil {
		return nil, err
	}
	type record struct {
		ShareID     string `json:"shareId"`
		Quantity    int64  `json:"quantity"`
		Owner       string `json:"owner"`
		Recipient   string `json:"recipient"`
		BeforeBlock int64  `json:"beforeBlock"`
		Signature   string `json:"signature"`
	}
	return marshal(struct {
		Record    record         `json:"record"`
		ExtraInfo map[string]any `json:"extra_info"`
	}{
		Record: record{
			ShareID:     encodeHex(p.shareID),
			Quantity:    p.quantity,
			Owner:       p.owner.String(),
			Recipient:   p.receiver.String(),
			BeforeBlock: p.beforeBlock,
			Signature:   sig,
		},
		ExtraInfo: p.extraInfo.orEmpty(),
	})
}
