package model

import (
	"encoding/json"
	"fmt"
)

// RegistrationRequest represents request for POST /sign/registration.
// Either Fingerprint or Content (base64) must be set.
type RegistrationRequest struct {
	Name        string            `json:"name"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Content     string            `json:"content,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Validate validates RegistrationRequest.
func (r *RegistrationRequest) Validate() error {
	if (r.Fingerprint == "") == (r.Content == "") {
		return fmt.Errorf("exactly one of fingerprint or content is required")
	}
	return nil
}

// IssueRequest represents request for POST /sign/issue
type IssueRequest struct {
	AssetID  string   `json:"assetId" binding:"required"`
	Quantity int      `json:"quantity,omitempty"`
	Nonces   []uint64 `json:"nonces,omitempty"`
}

// Validate validates IssueRequest.
func (r *IssueRequest) Validate() error {
	if r.AssetID == "" {
		return fmt.Errorf("assetId is required")
	}
	if r.Quantity <= 0 && len(r.Nonces) == 0 {
		return fmt.Errorf("quantity or nonces is required")
	}
	return nil
}

// TransferRequest represents request for POST /sign/transfer
type TransferRequest struct {
	Link     string `json:"link" binding:"required"`
	Receiver string `json:"receiver" binding:"required"`
}

// Validate validates TransferRequest.
func (r *TransferRequest) Validate() error {
	if r.Link == "" || r.Receiver == "" {
		return fmt.Errorf("link and receiver are required")
	}
	return nil
}

// SignResponse represents response for POST /sign/...
// Record is the canonical JSON the caller broadcasts.
type SignResponse struct {
	AssetID string          `json:"assetId,omitempty"`
	TxIDs   []string        `json:"txIds"`
	Record  json.RawMessage `json:"record" swaggertype:"object"`
}
