package params

import (
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
)

// transferRecord is shared by direct transfers and transfer offers; only the
// tag differs.
type transferRecord struct {
	link  []byte
	owner *keys.Address
	signature
}

func newTransferRecord(link string, owner *keys.Address) (transferRecord, error) {
	if err := common.FirstInvalid(
		common.CheckValid(common.IsHexOfLen(link, linkSize), "invalid link"),
		common.CheckValid(owner != nil, "invalid owner"),
	); err != nil {
		return transferRecord{}, err
	}
	b, err := common.DecodeHex("link", link)
	if err != nil {
		return transferRecord{}, err
	}
	return transferRecord{link: b, owner: owner}, nil
}

// pack: tag, link, escrow flag, owner.
func (r *transferRecord) pack(tag uint64) []byte {
	buf := appendUvarint(nil, tag)
	buf = appendBytes(buf, r.link)
	buf = append(buf, noEscrow)
	return appendBytes(buf, r.owner.Pack())
}

type transferJSON struct {
	Link      string `json:"link"`
	Owner     string `json:"owner"`
	Signature string `json:"signature"`
}

func (r *transferRecord) json() (transferJSON, error) {
	sig, err := r.hex()
	if err != nil {
		return transferJSON{}, err
	}
	return transferJSON{
		Link:      encodeHex(r.link),
		Owner:     r.owner.String(),
		Signature: sig,
	}, nil
}

// TransferParams moves a bitmark, identified by the id of its latest
// transaction, to a new owner.
type TransferParams struct {
	transferRecord
}

func NewTransferParams(link string, owner *keys.Address) (*TransferParams, error) {
	r, err := newTransferRecord(link, owner)
	if err != nil {
		return nil, err
	}
	return &TransferParams{r}, nil
}

func (p *TransferParams) Pack() []byte {
	return p.pack(tagTransfer)
}

func (p *TransferParams) Sign(signer Signer) error {
	return p.sign(signer, p.Pack())
}

func (p *TransferParams) TxID() (string, error) {
	if !p.IsSigned() {
		return "", common.NotSigned()
	}
	return txID(p.Pack(), p.value), nil
}

func (p *TransferParams) ToCanonicalJSON() ([]byte, error) {
	rec, err := p.json()
	if err != nil {
		return nil, err
	}
	return marshal(struct {
		Transfer transferJSON `json:"transfer"`
	}{rec})
}

// TransferOfferParams proposes a transfer that the receiver countersigns.
type TransferOfferParams struct {
	transferRecord
	extraInfo ExtraInfo
}

func NewTransferOfferParams(link string, owner *keys.Address) (*TransferOfferParams, error) {
	r, err := newTransferRecord(link, owner)
	if err != nil {
		return nil, err
	}
	return &TransferOfferParams{transferRecord: r}, nil
}

// SetExtraInfo attaches data that travels with the offer but is not signed.
func (p *TransferOfferParams) SetExtraInfo(info ExtraInfo) {
	p.extraInfo = info
}

func (p *TransferOfferParams) Pack() []byte {
	return p.pack(tagTransferOffer)
}

func (p *TransferOfferParams) Sign(signer Signer) error {
	return p.sign(signer, p.Pack())
}

func (p *TransferOfferParams) ToCanonicalJSON() ([]byte, error) {
	rec, err := p.json()
	if err != nil {
		return nil, err
	}
	type offer struct {
		Record    transferJSON   `json:"record"`
		ExtraInfo map[string]any `json:"extra_info"`
	}
	return marshal(struct {
		Offer offer `json:"offer"`
	}{offer{rec, p.extraInfo.orEmpty()}})
}
