package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/AlexZinkM/bitmark-wallet/bitmark"
	"github.com/AlexZinkM/bitmark-wallet/internal/model"
	"github.com/AlexZinkM/bitmark-wallet/internal/params"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

// SignHandler signs records with the saved account
type SignHandler struct {
	store   *bitmark.Store
	network seed.Network
}

// NewSignHandler creates a new SignHandler
func NewSignHandler(store *bitmark.Store, network seed.Network) *SignHandler {
	return &SignHandler{store: store, network: network}
}

// withAccount unlocks the account for the duration of fn.
func (h *SignHandler) withAccount(w http.ResponseWriter, r *http.Request, fn func(a *bitmark.Account) (*bitmark.Signed, error)) {
	ok, err := h.store.Exists()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, model.CodeAccountNotFound, errNoAccount)
		return
	}

	a, err := h.store.Load(r.Context(), h.network)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	defer a.Destroy()

	signed, err := fn(a)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignResponse{
		AssetID: signed.AssetID,
		TxIDs:   signed.TxIDs,
		Record:  signed.Payload,
	})
}

// Registration handles POST /sign/registration
// @Summary      Sign asset registration
// @Description  Registers an asset by fingerprint, or by content hashed into a fingerprint
// @Tags         sign
// @Accept       json
// @Produce      json
// @Param        request  body      model.RegistrationRequest  true  "Asset"
// @Success      200      {object}  model.SignResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /sign/registration [post]
func (h *SignHandler) Registration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return
	}
	fingerprint := req.Fingerprint
	if req.Content != "" {
		fp, err := params.Fingerprint(base64.NewDecoder(base64.StdEncoding, strings.NewReader(req.Content)))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, fmt.Errorf("invalid content: %w", err))
			return
		}
		fingerprint = fp
	}

	h.withAccount(w, r, func(a *bitmark.Account) (*bitmark.Signed, error) {
		return bitmark.SignRegistration(a, req.Name, fingerprint, req.Metadata)
	})
}

// Issue handles POST /sign/issue
// @Summary      Sign issuance
// @Description  Issues bitmarks of a registered asset to the account, one per nonce
// @Tags         sign
// @Accept       json
// @Produce      json
// @Param        request  body      model.IssueRequest  true  "Issuance"
// @Success      200      {object}  model.SignResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /sign/issue [post]
func (h *SignHandler) Issue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.IssueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return
	}

	h.withAccount(w, r, func(a *bitmark.Account) (*bitmark.Signed, error) {
		return bitmark.SignIssue(a, req.AssetID, req.Quantity, req.Nonces)
	})
}

// Transfer handles POST /sign/transfer
// @Summary      Sign transfer
// @Description  Transfers a bitmark, identified by its latest transaction id, to a receiver
// @Tags         sign
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer"
// @Success      200      {object}  model.SignResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /sign/transfer [post]
func (h *SignHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return
	}

	h.withAccount(w, r, func(a *bitmark.Account) (*bitmark.Signed, error) {
		return bitmark.SignTransfer(a, req.Link, req.Receiver)
	})
}
