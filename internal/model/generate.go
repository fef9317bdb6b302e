package model

import (
	"fmt"
	"strings"
)

// GenerateRequest represents request for POST /account/generate
type GenerateRequest struct {
	// Words is 12 or 24, default 24
	Words int `json:"words,omitempty"`
	// Language of the returned phrase: "en" or "zh-tw"
	Language string `json:"language,omitempty"`
}

// Validate validates GenerateRequest.
func (r *GenerateRequest) Validate() error {
	if r.Words != 0 && r.Words != 12 && r.Words != 24 {
		return fmt.Errorf("words must be 12 or 24")
	}
	return nil
}

// RecoverRequest represents request for POST /account/recover
type RecoverRequest struct {
	Phrase   string `json:"phrase" binding:"required"`
	Language string `json:"language,omitempty"`
}

// Validate validates RecoverRequest.
func (r *RecoverRequest) Validate() error {
	if strings.TrimSpace(r.Phrase) == "" {
		return fmt.Errorf("phrase is required")
	}
	return nil
}

// GenerateResponse represents response for POST /account/generate and /account/recover
type GenerateResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	AccountNumber string   `json:"accountNumber,omitempty"`
	Network       string   `json:"network,omitempty"`
	Phrase        []string `json:"phrase,omitempty"`
	QR            string   `json:"QR,omitempty"`
}
