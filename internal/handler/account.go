package handler

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/AlexZinkM/bitmark-wallet/bitmark"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/model"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

var errNoAccount = errors.New("no account saved")

// AccountHandler holds the account store and defaults for new accounts
type AccountHandler struct {
	store    *bitmark.Store
	network  seed.Network
	language mnemonic.Language
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(store *bitmark.Store, network seed.Network, language mnemonic.Language) *AccountHandler {
	return &AccountHandler{store: store, network: network, language: language}
}

func (h *AccountHandler) phraseLanguage(tag string) (mnemonic.Language, error) {
	if tag == "" {
		return h.language, nil
	}
	return mnemonic.ParseLanguage(tag)
}

// Generate handles POST /account/generate
// @Summary      Generate new account
// @Description  Generates a new Bitmark account, saves it to the key vault and returns its recovery phrase once
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  false  "Phrase options"
// @Success      200      {object}  model.GenerateResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /account/generate [post]
func (h *AccountHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.GenerateRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return
	}
	lang, err := h.phraseLanguage(req.Language)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	version := seed.TwentyFour
	if req.Words == 12 {
		version = seed.Twelve
	}

	gen, err := bitmark.GenerateAccount(r.Context(), h.store, version, h.network, lang)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse("Account generated successfully", gen))
}

// Recover handles POST /account/recover
// @Summary      Recover account
// @Description  Recovers an account from its recovery phrase and saves it to the key vault
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      model.RecoverRequest  true  "Recovery phrase"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /account/recover [post]
func (h *AccountHandler) Recover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RecoverRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return
	}
	lang, err := h.phraseLanguage(req.Language)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	gen, err := bitmark.ImportAccount(r.Context(), h.store, req.Phrase, h.network, lang)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	// The caller already knows the phrase.
	gen.Phrase = nil
	writeJSON(w, http.StatusOK, generateResponse("Account recovered successfully", gen))
}

func generateResponse(message string, gen *bitmark.Generated) model.GenerateResponse {
	return model.GenerateResponse{
		Success:       true,
		Message:       message,
		AccountNumber: gen.AccountNumber,
		Network:       gen.Network.String(),
		Phrase:        gen.Phrase,
		QR:            gen.QRCode,
	}
}

// Get handles GET /account
// @Summary      Get account
// @Description  Unlocks the saved account and returns its account number
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.AccountResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /account [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.requireAccount(w, r) {
		return
	}
	a, err := h.store.Load(r.Context(), h.network)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	defer a.Destroy()

	qr, err := a.QRCode()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AccountResponse{
		AccountNumber: a.AccountNumber(),
		Network:       a.Network().String(),
		PublicKey:     hex.EncodeToString(a.PublicKey()),
		QR:            qr,
	})
}

// Remove handles DELETE /account
// @Summary      Remove account
// @Description  Removes the saved account and its wrapping key after authentication
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.RemoveResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /account [delete]
func (h *AccountHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !h.requireAccount(w, r) {
		return
	}
	if err := h.store.Remove(r.Context()); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RemoveResponse{Success: true, Message: "Account removed"})
}

// Account dispatches /account by method.
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodDelete:
		h.Remove(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or DELETE", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) requireAccount(w http.ResponseWriter, r *http.Request) bool {
	ok, err := h.store.Exists()
	if err != nil {
		writeFailure(w, r, err)
		return false
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, model.CodeAccountNotFound, errNoAccount)
		return false
	}
	return true
}
