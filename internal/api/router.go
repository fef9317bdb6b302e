package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/AlexZinkM/bitmark-wallet/internal/handler"
)

// SetupRouter sets up router with handlers
func SetupRouter(accountHandler *handler.AccountHandler, signHandler *handler.SignHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Account endpoints
	mux.HandleFunc("/account/generate", accountHandler.Generate)
	mux.HandleFunc("/account/recover", accountHandler.Recover)
	mux.HandleFunc("/account", accountHandler.Account)

	// Signing endpoints
	mux.HandleFunc("/sign/issue", signHandler.Issue)
	mux.HandleFunc("/sign/transfer", signHandler.Transfer)
	mux.HandleFunc("/sign/registration", signHandler.Registration)

	return handler.WithRequestID(mux)
}
