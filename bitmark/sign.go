package bitmark

import (
	"encoding/json"

	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
	"github.com/AlexZinkM/bitmark-wallet/internal/params"
)

// Signed is a record ready to be broadcast by the caller.
type Signed struct {
	AssetID string
	TxIDs   []string
	Payload json.RawMessage
}

// SignRegistration registers an asset with the account as registrant.
func SignRegistration(a *Account, name, fingerprint string, metadata map[string]string) (*Signed, error) {
	p, err := params.NewRegistrationParams(name, fingerprint, metadata, a.Address())
	if err != nil {
		return nil, err
	}
	if err := p.Sign(a); err != nil {
		return nil, err
	}
	txID, err := p.TxID()
	if err != nil {
		return nil, err
	}
	payload, err := p.ToCanonicalJSON()
	if err != nil {
		return nil, err
	}
	return &Signed{AssetID: p.AssetID(), TxIDs: []string{txID}, Payload: payload}, nil
}

// SignIssue issues assetID to the account. Explicit nonces win over quantity.
func SignIssue(a *Account, assetID string, quantity int, nonces []uint64) (*Signed, error) {
	var (
		p   *params.IssuanceParams
		err error
	)
	if len(nonces) > 0 {
		p, err = params.NewIssuanceParams(assetID, a.Address(), nonces...)
	} else {
		p, err = params.NewRandomIssuanceParams(assetID, a.Address(), quantity)
	}
	if err != nil {
		return nil, err
	}
	if err := p.Sign(a); err != nil {
		return nil, err
	}
	txIDs, err := p.TxIDs()
	if err != nil {
		return nil, err
	}
	payload, err := p.ToCanonicalJSON()
	if err != nil {
		return nil, err
	}
	return &Signed{AssetID: assetID, TxIDs: txIDs, Payload: payload}, nil
}

// SignTransfer transfers the bitmark whose latest transaction is link to
// receiver, an account number.
func SignTransfer(a *Account, link, receiver string) (*Signed, error) {
	owner, err := keys.ParseAddress(receiver)
	if err != nil {
		return nil, err
	}
	p, err := params.NewTransferParams(link, owner)
	if err != nil {
		return nil, err
	}
	if err := p.Sign(a); err != nil {
		return nil, err
	}
	txID, err := p.TxID()
	if err != nil {
		return nil, err
	}
	payload, err := p.ToCanonicalJSON()
	if err != nil {
		return nil, err
	}
	return &Signed{TxIDs: []string{txID}, Payload: payload}, nil
}
