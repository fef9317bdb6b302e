package model

// AccountResponse represents response for GET /account
type AccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Network       string `json:"network"`
	PublicKey     string `json:"publicKey"`
	QR            string `json:"QR"`
}

// RemoveResponse represents response for DELETE /account
type RemoveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
