package params

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
)

// Reply is the receiver's or sender's answer to an offer.
type Reply string

const (
	ReplyAccept Reply = "accept"
	ReplyReject Reply = "reject"
	ReplyCancel Reply = "cancel"
)

// signedOffer is a countersignable record: transfer offers and share grants.
type signedOffer interface {
	Pack() []byte
	Signature() []byte
	IsSigned() bool
}

// offerResponse answers an offer. Accepting countersigns the offer payload
// together with its signature; rejecting or cancelling signs an update
// message naming the requester and time.
type offerResponse struct {
	id        string
	reply     Reply
	offer     signedOffer
	requester *keys.Address
	timestamp int64
	signature
}

func newAccept(id string, offer signedOffer) (offerResponse, error) {
	if err := common.FirstInvalid(
		common.CheckValid(uuid.Validate(id) == nil, "invalid offer id"),
		common.CheckValid(offer != nil, "invalid offer"),
	); err != nil {
		return offerResponse{}, err
	}
	if err := common.CheckValid(offer.IsSigned(), "offer is not signed"); err != nil {
		return offerResponse{}, err
	}
	return offerResponse{id: id, reply: ReplyAccept, offer: offer}, nil
}

func newUpdate(id string, reply Reply, requester *keys.Address, at time.Time) (offerResponse, error) {
	if err := common.FirstInvalid(
		common.CheckValid(uuid.Validate(id) == nil, "invalid offer id"),
		common.CheckValid(reply == ReplyReject || reply == ReplyCancel, "invalid reply"),
		common.CheckValid(requester != nil, "invalid requester"),
		common.CheckValid(!at.IsZero() && at.Unix() >= 0, "invalid timestamp"),
	); err != nil {
		return offerResponse{}, err
	}
	return offerResponse{id: id, reply: reply, requester: requester, timestamp: at.Unix()}, nil
}

func (r *offerResponse) Reply() Reply {
	return r.reply
}

// Pack returns the payload the response signature covers.
func (r *offerResponse) Pack() []byte {
	if r.reply == ReplyAccept {
		return appendBytes(r.offer.Pack(), r.offer.Signature())
	}
	return []byte(fmt.Sprintf("updateOffer|%s|%s|%d", r.id, r.requester, r.timestamp))
}

func (r *offerResponse) Sign(signer Signer) error {
	return r.sign(signer, r.Pack())
}

func (r *offerResponse) ToCanonicalJSON() ([]byte, error) {
	sig, err := r.hex()
	if err != nil {
		return nil, err
	}
	if r.reply == ReplyAccept {
		return marshal(struct {
			ID               string `json:"id"`
			Reply            Reply  `json:"reply"`
			Countersignature string `json:"countersignature"`
		}{r.id, r.reply, sig})
	}
	return marshal(struct {
		ID        string `json:"id"`
		Reply     Reply  `json:"reply"`
		Requester string `json:"requester"`
		Timestamp int64  `json:"timestamp"`
		Signature string `json:"signature"`
	}{r.id, r.reply, r.requester.String(), r.timestamp, sig})
}

// TransferResponseParams answers a transfer offer.
type TransferResponseParams struct {
	offerResponse
}

// AcceptTransferOffer countersigns a signed offer.
func AcceptTransferOffer(id string, offer *TransferOfferParams) (*TransferResponseParams, error) {
	var o signedOffer
	if offer != nil {
		o = offer
	}
	r, err := newAccept(id, o)
	if err != nil {
		return nil, err
	}
	return &TransferResponseParams{r}, nil
}

// RejectTransferOffer is sent by the receiver.
func RejectTransferOffer(id string, requester *keys.Address, at time.Time) (*TransferResponseParams, error) {
	r, err := newUpdate(id, ReplyReject, requester, at)
	if err != nil {
		return nil, err
	}
	return &TransferResponseParams{r}, nil
}

// CancelTransferOffer is sent by the sender.
func CancelTransferOffer(id string, requester *keys.Address, at time.Time) (*TransferResponseParams, error) {
	r, err := newUpdate(id, ReplyCancel, requester, at)
	if err != nil {
		return nil, err
	}
	return &TransferResponseParams{r}, nil
}

// GrantResponseParams answers a share grant.
type GrantResponseParams struct {
	offerResponse
}

// AcceptShareGrant countersigns a signed grant.
func AcceptShareGrant(id string, grant *ShareGrantingParams) (*GrantResponseParams, error) {
	var o signedOffer
	if grant != nil {
		o = grant
	}
	r, err := newAccept(id, o)
	if err != nil {
		return nil, err
	}
	return &GrantResponseParams{r}, nil
}

func RejectShareGrant(id string, requester *keys.Address, at time.Time) (*GrantResponseParams, error) {
	r, err := newUpdate(id, ReplyReject, requester, at)
	if err != nil {
		return nil, err
	}
	return &GrantResponseParams{r}, nil
}

func CancelShareGrant(id string, requester *keys.Address, at time.Time) (*GrantResponseParams, error) {
	r, err := newUpdate(id, ReplyCancel, requester, at)
	if err != nil {
		return nil, err
	}
	return &GrantResponseParams{r}, nil
}
